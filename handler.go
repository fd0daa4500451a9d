package devserve

import (
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/matthewmueller/httpbuf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LiveReloadPath is where the server exposes its event stream. The
// injected client connects back to it.
const LiveReloadPath = "/__livereload"

// MetricsPath exposes the server's internal counters in Prometheus text
// format.
const MetricsPath = "/__metrics"

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Get(LiveReloadPath, s.serveLiveReload)
	// The HEAD wildcard below would otherwise capture the stream path and
	// hand it to the file server.
	router.Head(LiveReloadPath, methodNotAllowed)
	router.Method(http.MethodGet, MetricsPath, promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	router.Get("/*", s.serveStatic)
	router.Head("/*", s.serveStatic)
	return router
}

// serveStatic resolves the request path beneath the root and dispatches:
// directories redirect to their trailing-slash form, index pages and
// .html/.htm files go through the injection path, everything else is
// served verbatim.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.Inc()
	local, ok := s.localPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	info, err := os.Stat(local)
	if err != nil {
		// The fallback file server renders the standard 404 page.
		s.files.ServeHTTP(w, r)
		return
	}
	if info.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			// Redirect /sub -> /sub/ so relative asset URLs resolve from
			// the index page.
			redirectTrailingSlash(w, r)
			return
		}
		for _, index := range []string{"index.html", "index.htm"} {
			candidate := filepath.Join(local, index)
			if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
				s.serveHTML(w, r, candidate)
				return
			}
		}
		s.serveListing(w, r)
		return
	}
	switch strings.ToLower(filepath.Ext(local)) {
	case ".html", ".htm":
		s.serveHTML(w, r, local)
	default:
		http.ServeFile(w, r, local)
	}
}

// serveHTML reads the whole file, injects the client when the document
// doesn't already carry it, and responds with the exact length of the
// final bytes. HEAD gets identical headers and no body, so its
// Content-Length reflects the injected size too.
func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, file string) {
	data, err := os.ReadFile(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	data = inject(data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(data); err != nil {
		s.log.Debug("devserve: client went away mid-response", "path", r.URL.Path)
	}
}

// serveListing falls back to the standard file server's directory listing,
// buffered so the live-reload client can be appended to the generated
// HTML. Listings reload on change just like real pages.
func (s *Server) serveListing(w http.ResponseWriter, r *http.Request) {
	rw := httpbuf.Wrap(w)
	defer rw.Flush()
	s.files.ServeHTTP(rw, r)
	if !strings.HasPrefix(rw.Header().Get("Content-Type"), "text/html") {
		return
	}
	body := inject(rw.Body)
	if len(body) == len(rw.Body) {
		return
	}
	rw.Body = body
	rw.Header().Set("Content-Length", strconv.Itoa(len(body)))
	rw.Header().Set("Cache-Control", "no-cache")
}

// localPath maps a request path to a filesystem path under the root.
// Cleaning the rooted path first means ".." can never climb above it.
func (s *Server) localPath(urlPath string) (string, bool) {
	if strings.ContainsAny(urlPath, "\x00\\") {
		return "", false
	}
	clean := path.Clean("/" + urlPath)
	return filepath.Join(s.root, filepath.FromSlash(clean)), true
}

func redirectTrailingSlash(w http.ResponseWriter, r *http.Request) {
	u := url.URL{Path: r.URL.Path + "/", RawQuery: r.URL.RawQuery}
	http.Redirect(w, r, u.String(), http.StatusMovedPermanently)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
