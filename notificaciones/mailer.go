// Package notificaciones envía los correos de confirmación de citas
package notificaciones

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"text/template"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gopkg.in/gomail.v2"

	"github.com/lizet96/citas-backend/config"
	"github.com/lizet96/citas-backend/models"
)

// ErrSinCredenciales indica que no hay credenciales SMTP configuradas
var ErrSinCredenciales = errors.New("credenciales SMTP no configuradas")

// ErrorEnvio envuelve una falla al entregar el correo
type ErrorEnvio struct {
	Destino string
	Err     error
}

func (e *ErrorEnvio) Error() string {
	return fmt.Sprintf("enviar correo a %s: %v", e.Destino, e.Err)
}

func (e *ErrorEnvio) Unwrap() error {
	return e.Err
}

var notificacionesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "citas_notificaciones_total",
		Help: "Correos de confirmación de citas por resultado",
	},
	[]string{"resultado"},
)

// Remitente entrega mensajes ya armados. *gomail.Dialer lo cumple.
type Remitente interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer arma y envía el correo de confirmación de una cita
type Mailer struct {
	remitente Remitente
	from      string
	proveedor string
	loc       *time.Location

	wg sync.WaitGroup
}

// NewMailer crea un Mailer con un dialer SMTP. Sin credenciales el Mailer queda deshabilitado.
func NewMailer(cfg *config.Config) *Mailer {
	var remitente Remitente
	if cfg.SMTPConfigurado() {
		remitente = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return newMailer(remitente, cfg.SMTPFrom, cfg.ProveedorNombre, cfg.Location())
}

func newMailer(remitente Remitente, from, proveedor string, loc *time.Location) *Mailer {
	if loc == nil {
		loc = time.UTC
	}
	return &Mailer{
		remitente: remitente,
		from:      from,
		proveedor: proveedor,
		loc:       loc,
	}
}

// Configurado indica si el Mailer puede enviar correos
func (m *Mailer) Configurado() bool {
	return m.remitente != nil
}

var plantillaCuerpo = template.Must(template.New("cita").Parse(
	`Hola {{.Paciente}},

Tu cita ha sido registrada con éxito.

Fecha: {{.Fecha}}
Hora: {{.Hora}}
Motivo: {{.Motivo}}

Te esperamos en {{.Proveedor}}.
Si necesitas cancelar o reprogramar, comunícate con nosotros.
`))

type datosMensaje struct {
	Paciente  string
	Fecha     string
	Hora      string
	Motivo    string
	Proveedor string
}

func (m *Mailer) renderizar(cita models.Cita) (asunto, cuerpo string, err error) {
	fecha := cita.FechaHora.In(m.loc)
	datos := datosMensaje{
		Paciente:  cita.PacienteNombre,
		Fecha:     fecha.Format("02/01/2006"),
		Hora:      fecha.Format("15:04"),
		Motivo:    cita.MotivoOPorDefecto(),
		Proveedor: m.proveedor,
	}

	var buf bytes.Buffer
	if err := plantillaCuerpo.Execute(&buf, datos); err != nil {
		return "", "", err
	}
	asunto = fmt.Sprintf("Confirmación de cita - %s", m.proveedor)
	return asunto, buf.String(), nil
}

// Enviar arma el correo para la cita y lo entrega de forma síncrona
func (m *Mailer) Enviar(destino string, cita models.Cita) error {
	if !m.Configurado() {
		return ErrSinCredenciales
	}

	asunto, cuerpo, err := m.renderizar(cita)
	if err != nil {
		return &ErrorEnvio{Destino: destino, Err: err}
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.proveedor)
	msg.SetHeader("To", destino)
	msg.SetHeader("Subject", asunto)
	msg.SetBody("text/plain", cuerpo)

	if err := m.remitente.DialAndSend(msg); err != nil {
		return &ErrorEnvio{Destino: destino, Err: err}
	}
	return nil
}

// Despachar envía el correo en segundo plano. Nunca bloquea ni devuelve errores:
// las fallas solo se registran en el log.
func (m *Mailer) Despachar(destino string, cita models.Cita) {
	if !m.Configurado() {
		log.Printf("Advertencia: correo para la cita %d omitido, %v", cita.ID, ErrSinCredenciales)
		notificacionesTotal.WithLabelValues("omitida").Inc()
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Error: pánico enviando correo de la cita %d: %v", cita.ID, r)
				notificacionesTotal.WithLabelValues("fallida").Inc()
			}
		}()

		if err := m.Enviar(destino, cita); err != nil {
			log.Printf("Error enviando correo de la cita %d: %v", cita.ID, err)
			notificacionesTotal.WithLabelValues("fallida").Inc()
			return
		}
		log.Printf("Correo de confirmación enviado para la cita %d", cita.ID)
		notificacionesTotal.WithLabelValues("enviada").Inc()
	}()
}

// Esperar bloquea hasta que terminen los envíos en curso o se cancele ctx
func (m *Mailer) Esperar(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
