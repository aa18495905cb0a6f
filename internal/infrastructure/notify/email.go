package notify

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/inventorypro-api/internal/application/notification"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// MailSender lo cumple *gomail.Dialer.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// NewSMTPSender dialer SMTP de gomail.
func NewSMTPSender(host string, port int, username, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, username, password)
}

// EmailChannel envía la alerta al email del usuario asignado.
// Sin sender el envío es simulado: solo se registra en el log.
type EmailChannel struct {
	from   string
	sender MailSender
	log    *logger.Logger
}

// NewEmailChannel crea el canal. sender puede ser nil.
func NewEmailChannel(from string, sender MailSender, log *logger.Logger) *EmailChannel {
	if log == nil {
		log = logger.Nop()
	}
	return &EmailChannel{from: from, sender: sender, log: log.Component("notify.email")}
}

func (e *EmailChannel) Name() string { return notification.ChannelEmail }

// Subject asunto del correo de una alerta.
func Subject(n notification.Notification) string {
	return fmt.Sprintf("InventoryPro Alert: %s", n.ProductName)
}

func (e *EmailChannel) Send(ctx context.Context, n notification.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.AssignedTo.Email == "" {
		return fmt.Errorf("email: usuario %q sin dirección", n.AssignedTo.Name)
	}
	subject := Subject(n)
	if e.sender != nil {
		m := gomail.NewMessage()
		m.SetHeader("From", e.from)
		m.SetHeader("To", n.AssignedTo.Email)
		m.SetHeader("Subject", subject)
		m.SetHeader("X-Priority", priorityHeader(n.Severity))
		m.SetBody("text/plain", n.Message)
		if err := e.sender.DialAndSend(m); err != nil {
			return fmt.Errorf("email: smtp: %w", err)
		}
	}
	e.log.Info().
		Str("to", n.AssignedTo.Email).
		Str("subject", subject).
		Str("body", n.Message).
		Str("priority", n.Severity).
		Str("timestamp", n.Timestamp.Format(time.RFC3339)).
		Bool("simulated", e.sender == nil).
		Msg("notificación email enviada")
	return nil
}

func priorityHeader(severity string) string {
	switch severity {
	case entity.SeverityHigh:
		return "1"
	case entity.SeverityLow:
		return "5"
	}
	return "3"
}
