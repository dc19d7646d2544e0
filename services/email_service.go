package services

import (
	"fmt"
	"html"
	"strings"
	"svd_ambalaj_server/structs"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

// Notifier is told about new storefront submissions. Implementations must not block the
// caller.
type Notifier interface {
	OrderCreated(order structs.Order)
	SampleRequested(sample structs.SampleRequest)
}

type noopNotifier struct{}

func (noopNotifier) OrderCreated(structs.Order)            {}
func (noopNotifier) SampleRequested(structs.SampleRequest) {}

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

// EmailService sends staff notifications through Resend
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.EmailConfig
	send   func(params *resend.SendEmailRequest) error
	wg     sync.WaitGroup
}

// NewNotifier returns an EmailService when e-mail is enabled and configured, a no-op
// notifier otherwise.
func NewNotifier(logger *gecho.Logger, cfg *structs.EmailConfig) Notifier {
	if cfg == nil || !cfg.Enabled || cfg.ResendAPIKey == "" || len(cfg.NotifyTo) == 0 {
		logger.Info("E-mail notifications disabled")
		return noopNotifier{}
	}
	return NewEmailService(logger, cfg)
}

func NewEmailService(logger *gecho.Logger, cfg *structs.EmailConfig) *EmailService {
	c := getEmailClient(cfg.ResendAPIKey)
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		send: func(params *resend.SendEmailRequest) error {
			_, err := c.Emails.Send(params)
			return err
		},
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	if err := es.send(params); err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}
	return nil
}

// sendAsync sends in the background; failures are logged by SendEmail
func (es *EmailService) sendAsync(subject, body string) {
	es.wg.Add(1)
	go func() {
		defer es.wg.Done()
		_ = es.SendEmail(es.cfg.NotifyTo, subject, body)
	}()
}

// Wait blocks until every pending notification has been attempted
func (es *EmailService) Wait() {
	es.wg.Wait()
}

func (es *EmailService) OrderCreated(order structs.Order) {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "<li>%s x %d: %s %s</li>",
			html.EscapeString(item.Title), item.Quantity, item.Subtotal.StringFixed(2), html.EscapeString(order.Totals.Currency))
	}

	c := order.Customer
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head><meta charset="UTF-8"></head>
		<body style="font-family: Arial, sans-serif; color: #333;">
			<h2>Yeni sipariş: %s</h2>
			<p><strong>Müşteri:</strong> %s (%s)</p>
			<p><strong>E-posta:</strong> %s<br><strong>Telefon:</strong> %s</p>
			<p><strong>Adres:</strong> %s, %s</p>
			<ul>%s</ul>
			<p><strong>Ara toplam:</strong> %s %s<br><strong>Toplam:</strong> %s %s</p>
			<p>%s</p>
		</body>
		</html>
	`,
		html.EscapeString(order.ID),
		html.EscapeString(c.Name), html.EscapeString(c.Company),
		html.EscapeString(c.Email), html.EscapeString(c.Phone),
		html.EscapeString(c.Address), html.EscapeString(c.City),
		items.String(),
		order.Totals.Subtotal.StringFixed(2), html.EscapeString(order.Totals.Currency),
		order.Totals.Total.StringFixed(2), html.EscapeString(order.Totals.Currency),
		html.EscapeString(c.Notes),
	)

	es.sendAsync(fmt.Sprintf("Yeni sipariş %s", order.ID), body)
}

func (es *EmailService) SampleRequested(sample structs.SampleRequest) {
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head><meta charset="UTF-8"></head>
		<body style="font-family: Arial, sans-serif; color: #333;">
			<h2>Yeni numune talebi</h2>
			<p><strong>Ad:</strong> %s (%s)</p>
			<p><strong>E-posta:</strong> %s<br><strong>Telefon:</strong> %s</p>
			<p><strong>Ürün:</strong> %s<br><strong>Adet:</strong> %s</p>
			<p>%s</p>
		</body>
		</html>
	`,
		html.EscapeString(sample.Name), html.EscapeString(sample.Company),
		html.EscapeString(sample.Email), html.EscapeString(sample.Phone),
		html.EscapeString(sample.Product), html.EscapeString(sample.Quantity),
		html.EscapeString(sample.Notes),
	)

	es.sendAsync(fmt.Sprintf("Numune talebi: %s", sample.Product), body)
}
