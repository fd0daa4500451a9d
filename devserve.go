// Package devserve is a local development HTTP server for static sites.
// It serves a directory, injects a live-reload client into HTML responses
// and pushes reload events over server-sent events whenever a file beneath
// the root changes on disk. Adding ?inspect=1 to any page turns on an
// element inspector that copies a CSS selector for whatever you click.
package devserve

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/matthewmueller/devserve/watch"
	"github.com/matthewmueller/socket"
	"golang.org/x/sync/errgroup"
)

// Options configure the server. The zero value serves the current
// directory with the defaults below.
type Options struct {
	// Root is the directory to serve. Defaults to ".".
	Root string

	// Interval is the filesystem poll interval. Defaults to 400ms.
	Interval time.Duration

	// PingInterval is how long an idle live-reload stream waits before
	// sending a keep-alive ping. Defaults to 15s.
	PingInterval time.Duration

	// ExcludeDirs and ExcludeFiles extend the default watch exclusions
	// (.git directories and .DS_Store files).
	ExcludeDirs  []string
	ExcludeFiles []string
}

// New creates a dev server rooted at opts.Root. It fails if the root is
// not an existing directory.
func New(log *slog.Logger, opts Options) (*Server, error) {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Interval <= 0 {
		opts.Interval = 400 * time.Millisecond
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = 15 * time.Second
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("devserve: resolving root %q: %w", opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("devserve: root folder does not exist: %s", root)
	}
	exclude := watch.DefaultExclude().
		WithDirs(opts.ExcludeDirs...).
		WithFiles(opts.ExcludeFiles...)
	metrics := newMetrics()
	state := watch.NewState()
	watcher := watch.New(log, root, opts.Interval, exclude, state)
	watcher.OnScan = metrics.scans.Inc
	watcher.OnChange = metrics.changes.Inc
	s := &Server{
		log:     log,
		root:    root,
		state:   state,
		watcher: watcher,
		ping:    opts.PingInterval,
		metrics: metrics,
		files:   http.FileServer(http.Dir(root)),
	}
	s.mux = s.routes()
	return s, nil
}

// Server serves the watched root and owns the reload state shared by
// every live-reload stream.
type Server struct {
	log     *slog.Logger
	root    string
	state   *watch.State
	watcher *watch.Watcher
	ping    time.Duration
	metrics *metrics
	files   http.Handler
	mux     http.Handler
}

// Root returns the absolute directory being served.
func (s *Server) Root() string {
	return s.root
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Watch runs only the filesystem watcher. Most callers want
// ListenAndServe, which runs the watcher and the listener together.
func (s *Server) Watch(ctx context.Context) error {
	return s.watcher.Watch(ctx)
}

// ListenAndServe runs the watcher and the HTTP listener until ctx is done
// or either fails. Cancelling ctx is the normal way to shut down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.watcher.Watch(ctx)
	})
	eg.Go(func() error {
		return socket.ListenAndServe(ctx, addr, s)
	})
	return eg.Wait()
}
