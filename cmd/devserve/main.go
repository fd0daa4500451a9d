package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/matthewmueller/devserve"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		bind         string
		port         int
		root         string
		interval     time.Duration
		pingInterval time.Duration
		excludeDirs  []string
		excludeFiles []string
		logLevel     string
	)
	cmd := &cobra.Command{
		Use:   "devserve",
		Short: "Live-reloading HTTP server for static sites",
		Long: `Devserve serves a directory as a website for local development.

Every HTML response gets a small script injected that reconnects to the
server and reloads the page whenever a file under the root changes on
disk. Add ?inspect=1 to any page to click elements and copy their CSS
selectors; add ?noreload=1 to turn auto-reload off for that tab.

Examples:
  devserve
  devserve --root ./public --port 3000
  devserve --interval 1s --exclude-dir node_modules`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			server, err := devserve.New(log, devserve.Options{
				Root:         root,
				Interval:     interval,
				PingInterval: pingInterval,
				ExcludeDirs:  excludeDirs,
				ExcludeFiles: excludeFiles,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := net.JoinHostPort(bind, strconv.Itoa(port))
			fmt.Printf("Dev server running: http://%s/\n", addr)
			fmt.Printf("Serving: %s\n", server.Root())
			fmt.Println("Live reload: on (auto refresh on file changes)")
			fmt.Println("Inspect mode: add ?inspect=1 then click elements to copy a selector")
			fmt.Println("Stop server: Ctrl+C")

			err = server.ListenAndServe(ctx, addr)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&bind, "bind", "127.0.0.1", "address to bind to")
	flags.IntVarP(&port, "port", "p", 8080, "port to listen on")
	flags.StringVar(&root, "root", ".", "directory to serve")
	flags.DurationVar(&interval, "interval", 400*time.Millisecond, "filesystem poll interval")
	flags.DurationVar(&pingInterval, "ping-interval", 15*time.Second, "keep-alive interval for idle live-reload streams")
	flags.StringArrayVar(&excludeDirs, "exclude-dir", nil, "directory name to skip while watching (repeatable)")
	flags.StringArrayVar(&excludeFiles, "exclude-file", nil, "file name to skip while watching (repeatable)")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	return cmd
}
