package models

import (
	"time"
)

// EventoLog es una línea de log estructurada para eventos de la aplicación
type EventoLog struct {
	Timestamp   time.Time      `json:"timestamp"`
	LogLevel    string         `json:"log_level"`
	Message     string         `json:"message"`
	Environment string         `json:"environment"`
	PID         int            `json:"pid"`
	Data        map[string]any `json:"data,omitempty"`
}

// RequestLog describe una petición HTTP ya atendida
type RequestLog struct {
	RequestID    string `json:"request_id,omitempty"`
	Method       string `json:"method"`
	Path         string `json:"path"`
	StatusCode   int    `json:"status_code"`
	ResponseTime int64  `json:"response_time_ms"`
	IP           string `json:"ip"`
	UserAgent    string `json:"user_agent,omitempty"`
	Body         string `json:"body,omitempty"`
	LogLevel     string `json:"log_level"`
}

// Constantes para niveles de log
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelDebug   = "debug"
	LogLevelSuccess = "success"
)

// Constantes para ambientes
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTesting     = "testing"
)
