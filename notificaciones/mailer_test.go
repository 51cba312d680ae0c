package notificaciones

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/lizet96/citas-backend/models"
)

type fakeRemitente struct {
	mu       sync.Mutex
	mensajes []*gomail.Message
	err      error
	panico   bool
	bloqueo  chan struct{}
}

func (f *fakeRemitente) DialAndSend(m ...*gomail.Message) error {
	if f.bloqueo != nil {
		<-f.bloqueo
	}
	if f.panico {
		panic("smtp caído")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mensajes = append(f.mensajes, m...)
	return f.err
}

func (f *fakeRemitente) enviados() []*gomail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*gomail.Message(nil), f.mensajes...)
}

func citaDePrueba() models.Cita {
	motivo := "Dolor de cabeza"
	return models.Cita{
		ID:             7,
		PacienteNombre: "Ana",
		FechaHora:      time.Date(2024, 5, 1, 16, 30, 0, 0, time.UTC),
		Motivo:         &motivo,
		Status:         models.StatusPendiente,
	}
}

func TestRenderizar(t *testing.T) {
	m := newMailer(&fakeRemitente{}, "citas@example.com", "Clínica Menchaca", time.UTC)

	asunto, cuerpo, err := m.renderizar(citaDePrueba())
	require.NoError(t, err)

	assert.Equal(t, "Confirmación de cita - Clínica Menchaca", asunto)
	assert.Contains(t, cuerpo, "Hola Ana")
	assert.Contains(t, cuerpo, "Fecha: 01/05/2024")
	assert.Contains(t, cuerpo, "Hora: 16:30")
	assert.Contains(t, cuerpo, "Motivo: Dolor de cabeza")
	assert.Contains(t, cuerpo, "Clínica Menchaca")
}

func TestRenderizarMotivoPorDefectoYZona(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	m := newMailer(&fakeRemitente{}, "citas@example.com", "Clínica", loc)

	cita := citaDePrueba()
	cita.Motivo = nil

	_, cuerpo, err := m.renderizar(cita)
	require.NoError(t, err)
	assert.Contains(t, cuerpo, "Motivo: "+models.MotivoPorDefecto)
	assert.Contains(t, cuerpo, "Hora: 10:30")
}

func TestEnviar(t *testing.T) {
	rem := &fakeRemitente{}
	m := newMailer(rem, "citas@example.com", "Clínica", time.UTC)

	require.NoError(t, m.Enviar("ana@example.com", citaDePrueba()))

	enviados := rem.enviados()
	require.Len(t, enviados, 1)
	assert.Equal(t, []string{"ana@example.com"}, enviados[0].GetHeader("To"))
}

func TestEnviarSinCredenciales(t *testing.T) {
	m := newMailer(nil, "", "Clínica", time.UTC)

	assert.False(t, m.Configurado())
	assert.ErrorIs(t, m.Enviar("ana@example.com", citaDePrueba()), ErrSinCredenciales)
}

func TestEnviarFalla(t *testing.T) {
	causa := errors.New("535 authentication failed")
	m := newMailer(&fakeRemitente{err: causa}, "citas@example.com", "Clínica", time.UTC)

	err := m.Enviar("ana@example.com", citaDePrueba())

	var envio *ErrorEnvio
	require.ErrorAs(t, err, &envio)
	assert.Equal(t, "ana@example.com", envio.Destino)
	assert.ErrorIs(t, err, causa)
}

func TestDespacharNoBloquea(t *testing.T) {
	rem := &fakeRemitente{bloqueo: make(chan struct{})}
	m := newMailer(rem, "citas@example.com", "Clínica", time.UTC)

	regreso := make(chan struct{})
	go func() {
		m.Despachar("ana@example.com", citaDePrueba())
		close(regreso)
	}()

	select {
	case <-regreso:
	case <-time.After(time.Second):
		t.Fatal("Despachar blocked on delivery")
	}

	close(rem.bloqueo)
	require.NoError(t, m.Esperar(context.Background()))
	assert.Len(t, rem.enviados(), 1)
}

func TestDespacharTragaErrores(t *testing.T) {
	m := newMailer(&fakeRemitente{err: errors.New("relay down")}, "citas@example.com", "Clínica", time.UTC)

	m.Despachar("ana@example.com", citaDePrueba())
	assert.NoError(t, m.Esperar(context.Background()))
}

func TestDespacharRecuperaPanico(t *testing.T) {
	m := newMailer(&fakeRemitente{panico: true}, "citas@example.com", "Clínica", time.UTC)

	m.Despachar("ana@example.com", citaDePrueba())
	assert.NoError(t, m.Esperar(context.Background()))
}

func TestDespacharSinCredencialesNoEnvia(t *testing.T) {
	m := newMailer(nil, "", "Clínica", time.UTC)

	m.Despachar("ana@example.com", citaDePrueba())
	assert.NoError(t, m.Esperar(context.Background()))
}

func TestEsperarRespetaContexto(t *testing.T) {
	rem := &fakeRemitente{bloqueo: make(chan struct{})}
	m := newMailer(rem, "citas@example.com", "Clínica", time.UTC)
	m.Despachar("ana@example.com", citaDePrueba())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Esperar(ctx), context.DeadlineExceeded)

	close(rem.bloqueo)
	require.NoError(t, m.Esperar(context.Background()))
}
