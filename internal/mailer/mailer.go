// Package mailer sends supplier and manager emails over SMTP. When
// mail is disabled the log mailer records the message instead so the
// approval flow stays testable without an SMTP server.
package mailer

import (
	"fmt"
	"strings"

	"github.com/aims-retail/aims-backend/internal/config"
	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/pkg/logger"
	gomail "gopkg.in/gomail.v2"
)

type Mailer interface {
	SendRestockRequest(request domain.RestockRequest, approveURL, rejectURL string) error
	SendReturnRequest(ret domain.SupplierReturn) error
	SendManagerNotice(subject, body string) error
}

type smtpMailer struct {
	dialer  *gomail.Dialer
	from    string
	manager string
}

type logMailer struct {
	manager string
}

func New(cfg config.MailConfig) Mailer {
	if !cfg.Enabled {
		return &logMailer{manager: cfg.Manager}
	}

	return &smtpMailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		manager: cfg.Manager,
	}
}

func (m *smtpMailer) SendRestockRequest(request domain.RestockRequest, approveURL, rejectURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", request.SupplierEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Restock request %s (%d items)", request.ID, len(request.Items)))
	msg.SetBody("text/html", renderRestockBody(request, approveURL, rejectURL))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send restock request %s: %w", request.ID, err)
	}
	return nil
}

func (m *smtpMailer) SendReturnRequest(ret domain.SupplierReturn) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", ret.SupplierEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Return request: %d x %s (%s)", ret.Quantity, ret.ProductName, ret.SKU))
	msg.SetBody("text/plain", fmt.Sprintf(
		"We are returning %d units of %s (SKU %s).\n\nReason: %s\n",
		ret.Quantity, ret.ProductName, ret.SKU, ret.Reason))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send return request for defect %d: %w", ret.DefectID, err)
	}
	return nil
}

func (m *smtpMailer) SendManagerNotice(subject, body string) error {
	if m.manager == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.manager)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send manager notice: %w", err)
	}
	return nil
}

func renderRestockBody(request domain.RestockRequest, approveURL, rejectURL string) string {
	var b strings.Builder
	b.WriteString("<h2>Restock request</h2>")
	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	b.WriteString("<tr><th>SKU</th><th>Item</th><th>Current</th><th>Optimal</th><th>Order</th><th>Unit</th></tr>")
	for _, item := range request.Items {
		b.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>",
			item.SKU, item.Name, item.CurrentStock, item.OptimalStock,
			item.QuantityToOrder, item.Unit))
	}
	b.WriteString("</table>")
	b.WriteString(fmt.Sprintf("<p>Total value: %s</p>", request.TotalValue.StringFixed(2)))
	b.WriteString(fmt.Sprintf(
		"<p><a href=\"%s\">Approve</a> &nbsp; <a href=\"%s\">Reject</a></p>",
		approveURL, rejectURL))
	return b.String()
}

func (m *logMailer) SendRestockRequest(request domain.RestockRequest, approveURL, rejectURL string) error {
	log := logger.WithComponent("mailer")
	log.Info().
		Str("request_id", request.ID).
		Str("supplier", request.SupplierEmail).
		Int("items", len(request.Items)).
		Str("approve_url", approveURL).
		Msg("mail disabled, restock request logged only")
	return nil
}

func (m *logMailer) SendReturnRequest(ret domain.SupplierReturn) error {
	log := logger.WithComponent("mailer")
	log.Info().
		Int64("defect_id", ret.DefectID).
		Str("supplier", ret.SupplierEmail).
		Msg("mail disabled, return request logged only")
	return nil
}

func (m *logMailer) SendManagerNotice(subject, _ string) error {
	log := logger.WithComponent("mailer")
	log.Info().
		Str("subject", subject).
		Msg("mail disabled, manager notice logged only")
	return nil
}
