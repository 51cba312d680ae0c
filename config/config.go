// Package config carga la configuración del servicio desde variables de entorno
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrDatabaseURLRequerida se devuelve cuando falta DATABASE_URL. No hay valor por defecto.
var ErrDatabaseURLRequerida = errors.New("DATABASE_URL es requerida")

// Config agrupa toda la configuración del backend de citas
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`

	DBMaxConns   int32 `mapstructure:"DB_MAX_CONNS"`
	DBMinConns   int32 `mapstructure:"DB_MIN_CONNS"`
	DBAutoSchema bool  `mapstructure:"DB_AUTO_SCHEMA"`

	SMTPHost        string `mapstructure:"SMTP_HOST"`
	SMTPPort        int    `mapstructure:"SMTP_PORT"`
	SMTPUser        string `mapstructure:"SMTP_USER"`
	SMTPPassword    string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom        string `mapstructure:"SMTP_FROM"`
	ProveedorNombre string `mapstructure:"PROVEEDOR_NOMBRE"`
	ZonaHoraria     string `mapstructure:"ZONA_HORARIA"`

	ListadoCompleto bool          `mapstructure:"CITAS_LISTADO_COMPLETO"`
	CORSOrigins     string        `mapstructure:"CORS_ORIGINS"`
	RateLimitMax    int           `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	BodyLimit       int           `mapstructure:"BODY_LIMIT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`
}

// defaults también sirve como lista de llaves que viper debe leer del entorno.
var defaults = map[string]any{
	"DATABASE_URL":           "",
	"PORT":                   "3000",
	"ENVIRONMENT":            "development",
	"DB_MAX_CONNS":           30,
	"DB_MIN_CONNS":           5,
	"DB_AUTO_SCHEMA":         false,
	"SMTP_HOST":              "smtp.gmail.com",
	"SMTP_PORT":              587,
	"SMTP_USER":              "",
	"SMTP_PASSWORD":          "",
	"SMTP_FROM":              "",
	"PROVEEDOR_NOMBRE":       "Consultorio Médico",
	"ZONA_HORARIA":           "America/Mexico_City",
	"CITAS_LISTADO_COMPLETO": false,
	"CORS_ORIGINS":           "*",
	"RATE_LIMIT_MAX":         100,
	"RATE_LIMIT_WINDOW":      "15m",
	"BODY_LIMIT":             1024 * 1024,
	"SHUTDOWN_TIMEOUT":       "10s",
	"LOG_FILE":               "",
	"LOG_MAX_SIZE_MB":        50,
	"LOG_MAX_BACKUPS":        5,
	"LOG_MAX_AGE_DAYS":       28,
}

// LoadConfig lee el archivo .env (si existe) y luego las variables de entorno
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Advertencia: No se pudo cargar el archivo .env")
	}
	return FromEnv()
}

// FromEnv construye la configuración solo a partir del entorno del proceso
func FromEnv() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}
	if cfg.DatabaseURL == "" {
		return nil, ErrDatabaseURLRequerida
	}
	return &cfg, nil
}

// SMTPConfigurado indica si hay credenciales para enviar correos
func (c *Config) SMTPConfigurado() bool {
	return c.SMTPUser != "" && c.SMTPPassword != ""
}

// Location devuelve la zona horaria configurada, o UTC si no se puede cargar
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ZonaHoraria)
	if err != nil {
		log.Printf("Advertencia: zona horaria %q inválida, usando UTC: %v", c.ZonaHoraria, err)
		return time.UTC
	}
	return loc
}

// IsProduction indica si el servicio corre en producción
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
