package handlers

import (
	"context"

	"github.com/lizet96/citas-backend/models"
)

// ErrorResponse es el cuerpo de todas las respuestas de error
type ErrorResponse struct {
	Error    string   `json:"error"`
	Detalles []string `json:"detalles,omitempty"`
}

// CitaStore es la capa de datos que usan los handlers de citas
type CitaStore interface {
	ListarActivas(ctx context.Context) ([]models.Cita, error)
	ListarCanceladas(ctx context.Context) ([]models.Cita, error)
	ListarTodas(ctx context.Context) ([]models.Cita, error)
	Crear(ctx context.Context, nueva models.NuevaCita) (models.Cita, error)
	ActualizarStatus(ctx context.Context, id int, status string) (models.Cita, error)
}

// Notificador envía el aviso de una cita nueva sin bloquear al que lo llama
type Notificador interface {
	Despachar(destino string, cita models.Cita)
}
