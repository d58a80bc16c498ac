package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/labpool/labpool/internal/application/donation/receipt"
	"github.com/labpool/labpool/internal/shared/config"
)

var receiptHTML = template.Must(template.New("receipt").Parse(`<html>
<body>
	<h2>Thank you{{if .DonorName}}, {{.DonorName}}{{end}}!</h2>
	<p>We received your donation of <strong>{{.Currency}} {{.Amount}}</strong> to <strong>{{.PoolName}}</strong>.</p>
	{{if .TargetFired}}<p>Your contribution completed the funding target for this pool. The sample will now be sent to the lab.</p>{{end}}
	<p>Donation reference: {{.DonationID}}<br>Payment reference: {{.PaymentID}}</p>
</body>
</html>`))

// sendFunc lets tests capture messages instead of dialing SMTP.
type sendFunc func(m *gomail.Message) error

type SMTPEmailService struct {
	config config.EmailConfig
	send   sendFunc
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &SMTPEmailService{
		config: cfg,
		send:   func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

var _ receipt.Sender = (*SMTPEmailService)(nil)

func (s *SMTPEmailService) SendDonationReceipt(ctx context.Context, r receipt.DonationReceipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := s.buildReceipt(r)
	if err != nil {
		return err
	}
	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPEmailService) buildReceipt(r receipt.DonationReceipt) (*gomail.Message, error) {
	var html bytes.Buffer
	if err := receiptHTML.Execute(&html, r); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	plain := fmt.Sprintf("Thank you for donating %s %s to %s.\n\nDonation reference: %s\nPayment reference: %s\n",
		r.Currency, r.Amount, r.PoolName, r.DonationID, r.PaymentID)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", r.To)
	m.SetHeader("Subject", fmt.Sprintf("Your donation to %s", r.PoolName))
	m.SetBody("text/plain", plain)
	m.AddAlternative("text/html", html.String())
	return m, nil
}
