package database

import (
	"errors"
	"fmt"
)

// ErrCitaNoEncontrada se devuelve cuando ninguna fila coincide con el id
var ErrCitaNoEncontrada = errors.New("cita no encontrada")

// StoreError envuelve cualquier falla de la capa de datos
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
