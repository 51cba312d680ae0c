package models

import (
	"time"
)

// Status posibles de una cita
const (
	StatusPendiente  = "pendiente"
	StatusConfirmada = "confirmada"
	StatusCancelada  = "cancelada"
)

// MotivoPorDefecto se usa cuando la cita se crea sin motivo
const MotivoPorDefecto = "Consulta general"

// Cita representa la tabla citas en la base de datos
type Cita struct {
	ID             int        `json:"id" db:"id"`
	PacienteNombre string     `json:"paciente_nombre" db:"paciente_nombre"`
	Telefono       *string    `json:"telefono" db:"telefono"`
	Email          *string    `json:"email" db:"email"`
	FechaHora      time.Time  `json:"fecha_hora" db:"fecha_hora"`
	Motivo         *string    `json:"motivo" db:"motivo"`
	Status         string     `json:"status" db:"status"`
	DeletedAt      *time.Time `json:"deleted_at" db:"deleted_at"`
}

// Cancelada indica si la cita está en estado cancelada
func (c Cita) Cancelada() bool {
	return c.Status == StatusCancelada
}

// MotivoOPorDefecto devuelve el motivo de la cita o el motivo genérico
func (c Cita) MotivoOPorDefecto() string {
	if c.Motivo == nil || *c.Motivo == "" {
		return MotivoPorDefecto
	}
	return *c.Motivo
}

// CitaRequest representa el cuerpo de POST /api/citas
type CitaRequest struct {
	PacienteNombre string `json:"paciente_nombre" validate:"required"`
	Telefono       string `json:"telefono"`
	Email          string `json:"email"`
	FechaHora      string `json:"fecha_hora" validate:"required"`
	Motivo         string `json:"motivo"`
}

// StatusRequest representa el cuerpo de PUT /api/citas/:id/status
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// NuevaCita son los campos que se insertan al crear una cita
type NuevaCita struct {
	PacienteNombre string
	Telefono       *string
	Email          *string
	FechaHora      time.Time
	Motivo         string
}
