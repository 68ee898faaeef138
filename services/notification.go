package services

import (
	"fmt"
	"strconv"

	"github.com/Ayushyadav168/TradeFlow-Main/config"
	"github.com/Ayushyadav168/TradeFlow-Main/models"

	"gopkg.in/gomail.v2"
)

// SendTopUpReceiptEmail mails a receipt for a successful top-up. Sending is
// best-effort; callers log failures and move on, the payment outcome never
// depends on it.
func SendTopUpReceiptEmail(to string, txn models.Transaction) error {
	cfg := config.AppConfig
	if cfg == nil || cfg.SMTPHost == "" || to == "" {
		return nil
	}

	port := 587
	if p, err := strconv.Atoi(cfg.SMTPPort); err == nil && p > 0 {
		port = p
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "TradeFlow - Top-up Successful")

	body := fmt.Sprintf(`
		<h2>Top-up Successful</h2>
		<p>Your trading account has been credited.</p>
		<p><b>Amount:</b> ₹%d</p>
		<p><b>Payment ID:</b> %s</p>
		<p><b>Order ID:</b> %s</p>
		<p><b>Reference:</b> %s</p>
		<p><b>Date:</b> %s</p>
		<p>If you did not make this payment, contact support immediately.</p>
	`, txn.Amount, txn.PaymentID, txn.OrderID, txn.Receipt,
		txn.Timestamp.Format("2006-01-02 15:04:05"))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUsername, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt email: %v", err)
	}
	return nil
}
