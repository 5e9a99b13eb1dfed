// Package models defines core data structures for go-helloapi
package models

import "time"

// MessageResponse is the envelope for greeting payloads.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the envelope for the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthStatusOK is the only status the health endpoint reports: if the
// process can answer at all, it is healthy.
const HealthStatusOK = "healthy"

// AppInfo describes the running process for the info endpoint.
type AppInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Debug   bool   `json:"debug"`
}

// ErrorResponse is the envelope for all error payloads (404, 422, 500).
type ErrorResponse struct {
	Error string `json:"error"`
}

// RequestLogRecord captures one request for the access log. It lives only
// for the duration of the request that produced it.
type RequestLogRecord struct {
	Method   string
	Path     string
	Status   int
	ClientIP string
	Duration time.Duration
}
