package routes

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/lizet96/citas-backend/handlers"
	"github.com/lizet96/citas-backend/middleware"
)

// MensajeRaiz es la respuesta de la ruta de prueba GET /
const MensajeRaiz = "API de Citas Médicas Funcionando 🚀"

// Pinger verifica que la base de datos responda. *pgxpool.Pool lo cumple.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencias agrupa lo que necesitan las rutas
type Dependencias struct {
	Citas       *handlers.CitaHandler
	DB          Pinger
	CORSOrigins string
	RateLimit   middleware.RateLimitConfig
	BodyLimit   int
}

// NewApp crea la instancia de Fiber con su manejador de errores y todas las rutas
func NewApp(deps Dependencias) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
		AppName: "Citas Médicas API v1.0.0",
	})

	SetupRoutes(app, deps)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Ruta no encontrada",
			"message": "La ruta solicitada no existe en este servidor",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})

	return app
}

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App, deps Dependencias) {
	// Middleware global
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.LoggingMiddleware())
	app.Use(middleware.Metrics())
	app.Use(middleware.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Ruta de prueba
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(MensajeRaiz)
	})

	// Ruta de salud del sistema
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if deps.DB == nil || deps.DB.Ping(ctx) != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "error",
				"message": "Base de datos no disponible",
			})
		}
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Citas Médicas API",
			"version": "1.0.0",
		})
	})

	app.Get("/metrics", middleware.MetricsHandler())

	// Grupo de API
	api := app.Group("/api",
		middleware.CreateRateLimiter(deps.RateLimit),
		middleware.BodySizeLimit(deps.BodyLimit),
	)

	// --- RUTAS DE CITAS ---
	api.Get("/citas", deps.Citas.ObtenerCitas)
	api.Post("/citas", deps.Citas.CrearCita)
	api.Put("/citas/:id/status", deps.Citas.ActualizarStatusCita)

	// --- RUTAS DE CANCELACIONES ---
	api.Get("/cancelaciones", deps.Citas.ObtenerCancelaciones)
}
