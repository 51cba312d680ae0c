package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig configuración para rate limiting
type RateLimitConfig struct {
	Max        int           // Número máximo de requests
	Expiration time.Duration // Ventana de tiempo
	Message    string        // Mensaje de error personalizado
}

// DefaultRateLimit configuración por defecto para rate limiting
var DefaultRateLimit = RateLimitConfig{
	Max:        100,
	Expiration: 15 * time.Minute,
	Message:    "Demasiadas peticiones, intenta más tarde",
}

// CreateRateLimiter crea un middleware de rate limiting con la configuración especificada
func CreateRateLimiter(config RateLimitConfig) fiber.Handler {
	if config.Max <= 0 {
		config.Max = DefaultRateLimit.Max
	}
	if config.Expiration <= 0 {
		config.Expiration = DefaultRateLimit.Expiration
	}
	if config.Message == "" {
		config.Message = DefaultRateLimit.Message
	}

	return limiter.New(limiter.Config{
		Max:        config.Max,
		Expiration: config.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Usar IP del cliente como clave
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       config.Message,
				"retry_after": int(config.Expiration.Seconds()),
			})
		},
	})
}

// BodySizeLimit middleware para limitar el tamaño del cuerpo de la petición
func BodySizeLimit(maxSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if maxSize > 0 && len(c.Body()) > maxSize {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error":    "El tamaño de la petición excede el límite permitido",
				"max_size": maxSize,
			})
		}
		return c.Next()
	}
}

// SecurityHeaders middleware para agregar headers de seguridad
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
