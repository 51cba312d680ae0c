package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lizet96/citas-backend/models"
)

const columnasCita = `id, paciente_nombre, telefono, email, fecha_hora, motivo, status, deleted_at`

// DBTX es lo que CitaStore necesita del pool. *pgxpool.Pool lo cumple.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CitaStore ejecuta las consultas sobre la tabla citas
type CitaStore struct {
	db DBTX
}

// NewCitaStore crea un CitaStore sobre un pool compartido
func NewCitaStore(db DBTX) *CitaStore {
	return &CitaStore{db: db}
}

// ListarActivas devuelve las citas no canceladas, de la más próxima a la más lejana
func (s *CitaStore) ListarActivas(ctx context.Context) ([]models.Cita, error) {
	return s.listar(ctx, "listar citas activas",
		`SELECT `+columnasCita+` FROM citas
		 WHERE status <> $1
		 ORDER BY fecha_hora ASC`, models.StatusCancelada)
}

// ListarCanceladas devuelve las citas canceladas, las canceladas más recientemente primero
func (s *CitaStore) ListarCanceladas(ctx context.Context) ([]models.Cita, error) {
	return s.listar(ctx, "listar citas canceladas",
		`SELECT `+columnasCita+` FROM citas
		 WHERE status = $1
		 ORDER BY deleted_at DESC, fecha_hora ASC`, models.StatusCancelada)
}

// ListarTodas devuelve todas las citas sin filtrar por status
func (s *CitaStore) ListarTodas(ctx context.Context) ([]models.Cita, error) {
	return s.listar(ctx, "listar todas las citas",
		`SELECT `+columnasCita+` FROM citas ORDER BY fecha_hora ASC`)
}

func (s *CitaStore) listar(ctx context.Context, op, query string, args ...any) ([]models.Cita, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, &StoreError{Op: op, Err: err}
	}
	citas, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Cita])
	if err != nil {
		return nil, &StoreError{Op: op, Err: err}
	}
	if citas == nil {
		citas = []models.Cita{}
	}
	return citas, nil
}

// Crear inserta una cita y devuelve la fila creada con su id
func (s *CitaStore) Crear(ctx context.Context, nueva models.NuevaCita) (models.Cita, error) {
	motivo := nueva.Motivo
	if motivo == "" {
		motivo = models.MotivoPorDefecto
	}

	rows, err := s.db.Query(ctx,
		`INSERT INTO citas (paciente_nombre, telefono, email, fecha_hora, motivo)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+columnasCita,
		nueva.PacienteNombre, nueva.Telefono, nueva.Email, nueva.FechaHora, motivo)
	if err != nil {
		return models.Cita{}, &StoreError{Op: "crear cita", Err: err}
	}
	cita, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Cita])
	if err != nil {
		return models.Cita{}, &StoreError{Op: "crear cita", Err: err}
	}
	return cita, nil
}

// ActualizarStatus cambia el status de una cita y ajusta deleted_at según la transición
func (s *CitaStore) ActualizarStatus(ctx context.Context, id int, status string) (models.Cita, error) {
	rows, err := s.db.Query(ctx, transicionPara(status).sentencia(), status, id)
	if err != nil {
		return models.Cita{}, &StoreError{Op: "actualizar status", Err: err}
	}
	cita, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Cita])
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Cita{}, ErrCitaNoEncontrada
	}
	if err != nil {
		return models.Cita{}, &StoreError{Op: "actualizar status", Err: err}
	}
	return cita, nil
}

// transicion es el efecto de un cambio de status sobre deleted_at
type transicion int

const (
	transicionOtra transicion = iota
	transicionCancelar
	transicionConfirmar
)

func transicionPara(status string) transicion {
	switch status {
	case models.StatusCancelada:
		return transicionCancelar
	case models.StatusConfirmada:
		return transicionConfirmar
	default:
		return transicionOtra
	}
}

func (t transicion) sentencia() string {
	switch t {
	case transicionCancelar:
		return `UPDATE citas SET status = $1, deleted_at = NOW()
		 WHERE id = $2 RETURNING ` + columnasCita
	case transicionConfirmar:
		return `UPDATE citas SET status = $1, deleted_at = NULL
		 WHERE id = $2 RETURNING ` + columnasCita
	case transicionOtra:
		return `UPDATE citas SET status = $1
		 WHERE id = $2 RETURNING ` + columnasCita
	}
	panic("transicion desconocida")
}
