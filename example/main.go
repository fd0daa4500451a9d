package main

import (
	"context"
	"log/slog"

	"github.com/matthewmueller/devserve"
)

func main() {
	log := slog.Default()
	server, err := devserve.New(log, devserve.Options{
		Root: "example/public",
	})
	if err != nil {
		log.Error("unable to create server", "error", err)
		return
	}
	log.Info("Server started at http://localhost:3000")
	if err := server.ListenAndServe(context.Background(), ":3000"); err != nil {
		log.Error("error in server", "error", err)
	}
}
