// Package web provides the HTTP server and JSON API for go-helloapi
package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-helloapi/internal/config"
	"github.com/go-while/go-helloapi/internal/greeting"
	"github.com/go-while/go-helloapi/internal/models"
)

// WebServer represents the web server
type WebServer struct {
	Router    *gin.Engine
	Config    *config.Settings
	Greeter   *greeting.Greeter
	StartTime time.Time // Track server start time for uptime calculations
	httpSrv   *http.Server
}

// NewServer creates a new web server instance
func NewServer(settings *config.Settings) *WebServer {
	if settings.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Trust only common reverse proxy addresses (nginx, etc.)
	router.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"})

	// Security headers; SSL redirect headers are the reverse proxy's job
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	router.Use(secure.New(secureConfig))

	server := &WebServer{
		Router:    router,
		Config:    settings,
		Greeter:   greeting.NewGreeter(),
		StartTime: time.Now(),
	}

	router.Use(server.ReverseProxyMiddleware())
	router.Use(server.ProcessTimeMiddleware())
	router.Use(server.AccessLogMiddleware())
	router.Use(server.CORSMiddleware())
	// Recovery sits innermost so the logging middleware still records
	// the 500 produced by a panicking handler.
	router.Use(gin.Recovery())

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	s.Router.GET("/", s.getRoot)
	s.Router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	// Handle the bare prefix too, gin route groups only match below it
	s.Router.GET("/api/v1", s.getWelcome)

	api := s.Router.Group("/api/v1")
	{
		api.GET("/", s.getWelcome)
		api.GET("/hello/:name", s.getGreeting)
		api.GET("/health", s.getHealth)
		api.GET("/info", s.getInfo)
	}

	// Unmatched routes get a JSON error envelope instead of gin's default
	s.Router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "route not found: " + c.Request.URL.Path})
	})
}

// Start runs the HTTP server on the configured host:port. It blocks until
// Shutdown is called or the listener fails.
func (s *WebServer) Start() error {
	addr := s.Config.Addr()
	s.StartTime = time.Now() // Set the start time for uptime calculations
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("[WEB]: Starting HTTP server on %s", addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and drains in-flight requests.
func (s *WebServer) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	log.Printf("[WEB]: Shutting down HTTP server...")
	return s.httpSrv.Shutdown(ctx)
}
