package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/labpool/labpool/internal/application/donation/receipt"
	"github.com/labpool/labpool/internal/shared/config"
)

func TestSendDonationReceipt(t *testing.T) {
	svc := NewSMTPEmailService(config.EmailConfig{FromAddress: "noreply@labpool.test", FromName: "LabPool"})

	var sent *gomail.Message
	svc.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	err := svc.SendDonationReceipt(context.Background(), receipt.DonationReceipt{
		To:          "asha@example.com",
		DonorName:   "Asha <b>",
		DonationID:  "don-1",
		PoolName:    "Whey batch",
		Amount:      "1,250.00",
		Currency:    "INR",
		PaymentID:   "pay_1",
		TargetFired: true,
	})
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, []string{"asha@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"Your donation to Whey batch"}, sent.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1,250.00")
	assert.NotContains(t, buf.String(), "Asha <b>")
}

func TestSendDonationReceipt_SendFailure(t *testing.T) {
	svc := NewSMTPEmailService(config.EmailConfig{FromAddress: "noreply@labpool.test"})
	svc.send = func(*gomail.Message) error { return errors.New("connection refused") }

	err := svc.SendDonationReceipt(context.Background(), receipt.DonationReceipt{To: "a@example.com"})
	assert.ErrorContains(t, err, "connection refused")
}
