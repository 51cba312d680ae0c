package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lizet96/citas-backend/config"
	"github.com/lizet96/citas-backend/database"
	"github.com/lizet96/citas-backend/handlers"
	"github.com/lizet96/citas-backend/middleware"
	"github.com/lizet96/citas-backend/notificaciones"
	"github.com/lizet96/citas-backend/routes"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	// Cargar configuración (.env + entorno)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Error de configuración: %v", err)
	}
	configurarLogs(cfg)

	// Conectar a la base de datos
	pool, err := database.ConnectDB(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Error conectando a la base de datos: %v", err)
	}
	defer database.CloseDB(pool)

	if cfg.DBAutoSchema {
		if err := database.AsegurarEsquema(context.Background(), pool); err != nil {
			log.Fatalf("❌ Error creando el esquema: %v", err)
		}
		log.Println("Esquema de citas verificado")
	}

	mailer := notificaciones.NewMailer(cfg)
	if !mailer.Configurado() {
		log.Println("Advertencia: SMTP_USER/SMTP_PASSWORD no configurados, no se enviarán correos")
	}

	app := routes.NewApp(routes.Dependencias{
		Citas:       handlers.NewCitaHandler(database.NewCitaStore(pool), mailer, cfg.Location(), cfg.ListadoCompleto),
		DB:          pool,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit: middleware.RateLimitConfig{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
		},
		BodyLimit: cfg.BodyLimit,
	})

	go func() {
		log.Printf(" Servidor de Citas Médicas iniciado en puerto %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("❌ Error iniciando el servidor: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Apagando el servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Error durante el apagado: %v", err)
	}
	if err := mailer.Esperar(ctx); err != nil {
		log.Printf("Advertencia: correos pendientes sin terminar: %v", err)
	}
	log.Println("Servidor detenido")
}

// configurarLogs duplica el log a un archivo rotado cuando LOG_FILE está definido
func configurarLogs(cfg *config.Config) {
	if cfg.LogFile == "" {
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}))
}
