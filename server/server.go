package server

import (
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/authgate/errors"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/observability"
	"github.com/kbukum/authgate/server/endpoint"
	"github.com/kbukum/authgate/server/middleware"
)

// Server serves the Gin engine. CORS and the body limit sit in front of
// the engine, so unmatched paths get them too.
type Server struct {
	engine  *gin.Engine
	handler http.Handler
	http    *http.Server
	config  Config
	log     *logger.Logger

	listener net.Listener
}

// New builds the engine and the http.Server around it. Middleware and
// routes are added afterwards.
func New(cfg Config, log *logger.Logger) *Server {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	gin.SetMode(ginMode())

	engine := gin.New()
	// Odd paths like /data/ or //data are plain 404s, never redirects.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	engine.NoRoute(func(c *gin.Context) {
		RespondWithError(c, errors.RouteNotFound(c.Request.Method, c.Request.URL.Path))
	})

	front := middleware.Chain(
		middleware.CORS(&cfg.CORS),
		middleware.BodySizeLimit(cfg.MaxBodySize),
	)(engine)

	return &Server{
		engine:  engine,
		handler: front,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           h2c.NewHandler(front, &http2.Server{IdleTimeout: 2 * time.Minute}),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		config: cfg,
		log:    log.WithComponent("server"),
	}
}

// Gin in debug mode only when the logger is at debug level.
func ginMode() string {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// GinEngine is where the API registers its routes.
func (s *Server) GinEngine() *gin.Engine { return s.engine }

// Handler is the request path without the h2c upgrade. Tests drive it with
// httptest.
func (s *Server) Handler() http.Handler { return s.handler }

// ApplyMiddleware installs recovery, request IDs, tracing and request
// logging on the engine, in that order. metrics may be nil.
func (s *Server) ApplyMiddleware(metrics *observability.Metrics) {
	s.engine.Use(
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.Tracing(metrics),
		middleware.RequestLogger(s.log),
	)
}

// RegisterVersionEndpoint serves build information at /version.
func (s *Server) RegisterVersionEndpoint() {
	s.engine.GET("/version", endpoint.Version())
}

// Addr is the configured host:port.
func (s *Server) Addr() string { return s.http.Addr }

// ListenAddr is the bound address, or "" before Start.
func (s *Server) ListenAddr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
