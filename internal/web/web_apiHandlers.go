// Package web provides the HTTP server and JSON API for go-helloapi
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-helloapi/internal/greeting"
	"github.com/go-while/go-helloapi/internal/models"
)

// getRoot serves the fixed hello-world message at "/"
func (s *WebServer) getRoot(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: greeting.Greet("")})
}

// getWelcome serves the versioned API welcome message
func (s *WebServer) getWelcome(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Welcome to " + s.Config.AppName})
}

// getGreeting serves "/api/v1/hello/:name". The name is interpolated into
// the message exactly as received; only the greeting word is localized
// when the client asks for another language.
func (s *WebServer) getGreeting(c *gin.Context) {
	name := c.Param("name")
	if err := greeting.ValidateName(name); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
		return
	}

	message := s.Greeter.GreetIn(c.GetHeader("Accept-Language"), name)
	c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}

// getHealth always reports healthy: if the process can answer, it is.
func (s *WebServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: models.HealthStatusOK})
}

// getInfo returns application metadata for the running process
func (s *WebServer) getInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.AppInfo{
		Name:    s.Config.AppName,
		Version: s.Config.AppVersion,
		Uptime:  time.Since(s.StartTime).Round(time.Second).String(),
		Debug:   s.Config.Debug,
	})
}
