// Package outreach sends capped, paced intro and follow-up messages to
// qualified leads and routes inbound replies back into the funnel.
package outreach

import (
	"context"

	"github.com/rotisserie/eris"
	gomail "gopkg.in/gomail.v2"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/pkg/twilio"
)

// Message is one outbound communication.
type Message struct {
	Subject string // used by email, ignored by WhatsApp
	Body    string
}

// Transport delivers a message to a lead on one channel.
type Transport interface {
	Name() string
	Send(ctx context.Context, lead *model.Lead, msg Message) error
}

// WhatsAppTransport sends via the Twilio WhatsApp API.
type WhatsAppTransport struct {
	client twilio.Client
}

// NewWhatsApp creates a WhatsAppTransport.
func NewWhatsApp(client twilio.Client) *WhatsAppTransport {
	return &WhatsAppTransport{client: client}
}

func (t *WhatsAppTransport) Name() string { return "whatsapp" }

func (t *WhatsAppTransport) Send(ctx context.Context, lead *model.Lead, msg Message) error {
	if lead.Phone == "" {
		return eris.Errorf("lead %s has no phone", lead.Company)
	}
	_, err := t.client.SendWhatsApp(ctx, "+91"+lead.Phone, msg.Body)
	return eris.Wrapf(err, "whatsapp to %s", lead.Company)
}

// mailSender is the part of gomail's dialer the transport uses.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailTransport sends via SMTP using gomail.
type EmailTransport struct {
	sender mailSender
	from   string
}

// NewEmail creates an EmailTransport.
func NewEmail(host string, port int, username, password, from string) *EmailTransport {
	return &EmailTransport{
		sender: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (t *EmailTransport) Name() string { return "email" }

func (t *EmailTransport) Send(ctx context.Context, lead *model.Lead, msg Message) error {
	if lead.Email == "" {
		return eris.Errorf("lead %s has no email", lead.Company)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", t.from)
	m.SetHeader("To", lead.Email)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	return eris.Wrapf(t.sender.DialAndSend(m), "email to %s", lead.Company)
}
