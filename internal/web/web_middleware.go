package web

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-helloapi/internal/models"
)

// ProcessTimeHeader carries the per-request duration in fractional seconds.
const ProcessTimeHeader = "X-Process-Time"

// timingWriter injects the process-time header the moment the response
// status is committed, so the measured duration covers the handler work
// while the header still precedes the body.
type timingWriter struct {
	gin.ResponseWriter
	start       time.Time
	wroteHeader bool
}

func (w *timingWriter) stamp() {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	elapsed := time.Since(w.start).Seconds()
	w.Header().Set(ProcessTimeHeader, strconv.FormatFloat(elapsed, 'f', 6, 64))
}

func (w *timingWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *timingWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func (w *timingWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

// ProcessTimeMiddleware attaches the X-Process-Time header to every
// response, including error responses. It only observes: handler output
// and status pass through unchanged.
func (s *WebServer) ProcessTimeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &timingWriter{ResponseWriter: c.Writer, start: time.Now()}
		c.Next()
	}
}

// AccessLogMiddleware emits one log line per request with method, path,
// status, duration and client IP. Runs for every request, failed ones too.
func (s *WebServer) AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		rec := models.RequestLogRecord{
			Method:   c.Request.Method,
			Path:     path,
			Status:   c.Writer.Status(),
			ClientIP: c.ClientIP(),
			Duration: time.Since(start),
		}
		log.Printf("[WEB]: %s %s %d %s %s", rec.Method, rec.Path, rec.Status, rec.Duration, rec.ClientIP)
	}
}

// CORSMiddleware applies the allowed-origins policy from Settings and
// answers preflight requests.
func (s *WebServer) CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Vary on Origin even for disallowed origins, caches must not
		// replay an allowed-origin response to another origin
		c.Header("Vary", "Origin")
		if origin := c.GetHeader("Origin"); s.Config.OriginAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Accept, Accept-Language, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ReverseProxyMiddleware handles X-Forwarded headers when running behind a reverse proxy
func (s *WebServer) ReverseProxyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handle X-Forwarded-Proto to detect if the original request was HTTPS
		if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
			c.Request.URL.Scheme = "https"
		}

		// Handle X-Forwarded-For to get the real client IP
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			// Take the first IP from the list (original client)
			ips := strings.Split(xff, ",")
			if len(ips) > 0 {
				clientIP := strings.TrimSpace(ips[0])
				c.Request.RemoteAddr = clientIP + ":0"
			}
		}

		// Handle X-Real-IP as an alternative
		if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
			c.Request.RemoteAddr = realIP + ":0"
		}

		// Handle X-Forwarded-Host to get the original host
		if host := c.GetHeader("X-Forwarded-Host"); host != "" {
			c.Request.Host = host
		}

		c.Next()
	}
}
