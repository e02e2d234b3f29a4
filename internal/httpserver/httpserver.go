// Package httpserver wires a route.Table and a value.Builder into a
// GET-only chi router, and runs it.
package httpserver

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/netnix-sa/moquist/internal/route"
	"github.com/netnix-sa/moquist/internal/value"
)

// pathParam matches a single ":name" path segment, the configuration
// format's way of marking a dynamic route parameter.
var pathParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// Server answers every configured route deterministically, deriving each
// response from the request's single path parameter (if any), a fixed
// base seed, and a fixed array scale.
type Server struct {
	Builder *value.Builder
	Routes  route.Table
	Seed    uint64
	Scale   uint64
	Logger  *zap.Logger
}

// Handler builds the chi.Mux that Server answers with. Routes are
// registered in the order route.Order leaves them in: every static path
// before any dynamic one, so a literal segment always wins over a
// same-shaped parameterized route regardless of what chi's own
// precedence rules would otherwise pick.
func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(s.requestLogger)

	for _, r := range s.Routes {
		mux.Get(chiPattern(r.Path), s.handle(r))
	}

	return mux
}

// chiPattern rewrites the configuration's ":id" path-parameter syntax
// into chi's "{id}".
func chiPattern(path string) string {
	return pathParam.ReplaceAllString(path, "{$1}")
}

// handle returns the GET handler for a single configured route: it reads
// the request's dynamic segment (if the route pattern has one), builds a
// value.Context, and renders r.Response through the server's Builder.
func (s *Server) handle(r route.Route) http.HandlerFunc {
	paramNames := pathParam.FindAllStringSubmatch(r.Path, -1)

	return func(w http.ResponseWriter, req *http.Request) {
		var id *string
		for _, m := range paramNames {
			v := chi.URLParam(req, m[1])
			id = &v
			break
		}

		ctx := value.Context{ID: id, Seed: s.Seed, Size: s.Scale}

		result, err := s.Builder.Build(r.Response, ctx)
		if err != nil {
			s.Logger.Error("generation failed",
				zap.String("path", r.Path),
				zap.Error(err),
			)
			http.Error(w, "generation error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			s.Logger.Error("encoding response failed", zap.String("path", r.Path), zap.Error(err))
		}
	}
}

// requestLogger stamps every request with a correlation id and logs its
// method, path, status, and latency once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("X-Request-Id", reqID)

		next.ServeHTTP(ww, r)

		s.Logger.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

// ListenAndServe starts the server on addr. Passing "" binds the fixed
// production address, 0.0.0.0:80; tests should pass an explicit
// "127.0.0.1:0"-style address instead.
func (s *Server) ListenAndServe(addr string) error {
	if addr == "" {
		addr = "0.0.0.0:80"
	}

	if !strings.Contains(addr, ":") {
		return errors.Errorf("invalid listen address %q", addr)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	return srv.ListenAndServe()
}
