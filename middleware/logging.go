package middleware

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/citas-backend/models"
)

// Campos que no deben quedar en el log: datos de contacto del paciente
var sensitiveFields = []string{"telefono", "email", "password", "token"}

const maxBodyLog = 1000

// LoggingMiddleware registra cada petición HTTP en el log de la aplicación
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		entry := createLogEntry(c, time.Since(start))
		line, _ := json.Marshal(entry)
		log.Printf("[%s] %s", entry.LogLevel, line)

		return err
	}
}

// createLogEntry crea una entrada de log basada en la petición
func createLogEntry(c *fiber.Ctx, responseTime time.Duration) models.RequestLog {
	// Obtener IP real del cliente
	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		ip = realIP
	}

	// Obtener body (solo para métodos POST, PUT, PATCH)
	var body string
	if c.Method() == fiber.MethodPost || c.Method() == fiber.MethodPut || c.Method() == fiber.MethodPatch {
		body = filterSensitiveData(string(c.Body()))
	}

	requestID, _ := c.Locals("requestid").(string)
	status := c.Response().StatusCode()

	return models.RequestLog{
		RequestID:    requestID,
		Method:       c.Method(),
		Path:         c.Path(),
		StatusCode:   status,
		ResponseTime: responseTime.Milliseconds(),
		IP:           ip,
		UserAgent:    c.Get("User-Agent"),
		Body:         body,
		LogLevel:     determineLogLevel(status),
	}
}

// filterSensitiveData filtra información sensible del body
func filterSensitiveData(body string) string {
	if body == "" {
		return ""
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		// Si no es JSON válido, retornar truncado
		return truncate(body)
	}

	for _, field := range sensitiveFields {
		if _, exists := data[field]; exists {
			data[field] = "[FILTERED]"
		}
	}

	filteredJSON, _ := json.Marshal(data)
	return truncate(string(filteredJSON))
}

func truncate(s string) string {
	if len(s) > maxBodyLog {
		return s[:maxBodyLog] + "...[truncated]"
	}
	return s
}

// determineLogLevel determina el nivel de log basado en el status code
func determineLogLevel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return models.LogLevelSuccess
	case statusCode >= 300 && statusCode < 400:
		return models.LogLevelInfo
	case statusCode >= 400 && statusCode < 500:
		return models.LogLevelWarning
	case statusCode >= 500:
		return models.LogLevelError
	default:
		return models.LogLevelInfo
	}
}

// LogCustomEvent registra un evento de la aplicación como una línea JSON
func LogCustomEvent(level, message string, additionalData map[string]interface{}) {
	evento := models.EventoLog{
		Timestamp:   time.Now(),
		LogLevel:    level,
		Message:     message,
		Environment: getEnvironment(),
		PID:         os.Getpid(),
		Data:        additionalData,
	}
	line, err := json.Marshal(evento)
	if err != nil {
		log.Printf("[%s] %s (datos no serializables: %v)", level, message, err)
		return
	}
	log.Printf("[%s] %s", level, line)
}

func getEnvironment() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = models.EnvironmentDevelopment
	}
	return env
}
