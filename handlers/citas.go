package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/citas-backend/database"
	"github.com/lizet96/citas-backend/middleware"
	"github.com/lizet96/citas-backend/models"
)

// CitaHandler atiende las rutas de /api/citas y /api/cancelaciones
type CitaHandler struct {
	store           CitaStore
	notificador     Notificador
	validator       *validator.Validate
	loc             *time.Location
	listadoCompleto bool
}

// NewCitaHandler crea el handler de citas.
// Con listadoCompleto, GET /api/citas devuelve también las canceladas.
func NewCitaHandler(store CitaStore, notificador Notificador, loc *time.Location, listadoCompleto bool) *CitaHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &CitaHandler{
		store:           store,
		notificador:     notificador,
		validator:       newValidator(),
		loc:             loc,
		listadoCompleto: listadoCompleto,
	}
}

// ObtenerCitas lista las citas activas (o todas, en modo listado completo)
func (h *CitaHandler) ObtenerCitas(c *fiber.Ctx) error {
	listar := h.store.ListarActivas
	if h.listadoCompleto {
		listar = h.store.ListarTodas
	}

	citas, err := listar(c.UserContext())
	if err != nil {
		log.Printf("Error ejecutando query: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Error interno del servidor al obtener citas",
		})
	}
	return c.JSON(citas)
}

// ObtenerCancelaciones lista las citas canceladas
func (h *CitaHandler) ObtenerCancelaciones(c *fiber.Ctx) error {
	citas, err := h.store.ListarCanceladas(c.UserContext())
	if err != nil {
		log.Printf("Error ejecutando query: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Error interno del servidor al obtener cancelaciones",
		})
	}
	return c.JSON(citas)
}

// CrearCita registra una cita nueva y avisa al paciente por correo si dejó email
func (h *CitaHandler) CrearCita(c *fiber.Ctx) error {
	var req models.CitaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Datos inválidos"})
	}
	req.PacienteNombre = strings.TrimSpace(req.PacienteNombre)
	req.FechaHora = strings.TrimSpace(req.FechaHora)

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:    "Faltan campos obligatorios",
			Detalles: validationMessages(err),
		})
	}

	fechaHora, err := parseFechaHora(req.FechaHora, h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:    "Fecha y hora inválidas",
			Detalles: []string{err.Error()},
		})
	}

	cita, err := h.store.Crear(c.UserContext(), models.NuevaCita{
		PacienteNombre: req.PacienteNombre,
		Telefono:       opcional(req.Telefono),
		Email:          opcional(req.Email),
		FechaHora:      fechaHora,
		Motivo:         strings.TrimSpace(req.Motivo),
	})
	if err != nil {
		log.Printf("Error creando cita: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Error al crear la cita",
		})
	}

	if cita.Email != nil {
		h.notificador.Despachar(*cita.Email, cita)
	}

	middleware.LogCustomEvent(models.LogLevelSuccess, "Cita creada exitosamente", map[string]interface{}{
		"cita_id":    cita.ID,
		"fecha_hora": cita.FechaHora,
		"notificar":  cita.Email != nil,
		"action":     "cita_creada",
	})

	return c.Status(fiber.StatusCreated).JSON(cita)
}

// ActualizarStatusCita cambia el status de una cita (pendiente, confirmada, cancelada)
func (h *CitaHandler) ActualizarStatusCita(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "ID inválido"})
	}

	var req models.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Datos inválidos"})
	}
	req.Status = strings.TrimSpace(req.Status)
	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:    "Faltan campos obligatorios",
			Detalles: validationMessages(err),
		})
	}

	cita, err := h.store.ActualizarStatus(c.UserContext(), id, req.Status)
	if errors.Is(err, database.ErrCitaNoEncontrada) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Cita no encontrada"})
	}
	if err != nil {
		log.Printf("Error actualizando cita: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Error al actualizar la cita",
		})
	}

	middleware.LogCustomEvent(models.LogLevelInfo, "Status de cita actualizado", map[string]interface{}{
		"cita_id": cita.ID,
		"status":  cita.Status,
		"action":  "status_actualizado",
	})

	return c.JSON(cita)
}

func opcional(valor string) *string {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return nil
	}
	return &valor
}
