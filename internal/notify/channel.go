package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"geddit/internal/config"

	"github.com/google/uuid"
)

const transportTimeout = 10 * time.Second

// Channel sends email through SMTP and SMS through an HTTP gateway.
type Channel struct {
	smtpAddr   string
	smtpHost   string
	sender     string
	password   string
	gatewayURL string
	token      string
	httpClient *http.Client
}

// NewChannel creates a Channel from the mail and SMS configuration
func NewChannel(mail config.MailConfig, sms config.SMSConfig) *Channel {
	return &Channel{
		smtpAddr:   net.JoinHostPort(mail.Host, mail.Port),
		smtpHost:   mail.Host,
		sender:     mail.Sender,
		password:   mail.Password,
		gatewayURL: sms.GatewayURL,
		token:      sms.Token,
		httpClient: &http.Client{Timeout: transportTimeout},
	}
}

// SendEmail delivers a message over SMTP. The connection carries a deadline
// so a stalled mail relay cannot hang the caller.
func (ch *Channel) SendEmail(ctx context.Context, toAddress, subject, body string) error {
	messageID := uuid.NewString()

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", ch.sender)
	fmt.Fprintf(&msg, "To: %s\r\n", toAddress)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Message-ID: <%s@%s>\r\n", messageID, ch.smtpHost)
	msg.WriteString("\r\n")
	msg.WriteString(body)

	dialer := net.Dialer{Timeout: transportTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", ch.smtpAddr)
	if err != nil {
		return fmt.Errorf("failed to dial mail relay: %w", err)
	}

	deadline := time.Now().Add(transportTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set mail deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, ch.smtpHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open mail session: %w", err)
	}
	defer client.Close()

	if ch.password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", ch.sender, ch.password, ch.smtpHost)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("mail auth failed: %w", err)
			}
		}
	}

	if err := client.Mail(ch.sender); err != nil {
		return fmt.Errorf("mail sender rejected: %w", err)
	}
	if err := client.Rcpt(toAddress); err != nil {
		return fmt.Errorf("mail recipient rejected: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start mail body: %w", err)
	}
	if _, err := w.Write([]byte(msg.String())); err != nil {
		return fmt.Errorf("failed to write mail body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish mail body: %w", err)
	}

	log.Printf("Email %s sent to %s", messageID, toAddress)
	return client.Quit()
}

// SendSMS posts a message to the configured SMS gateway
func (ch *Channel) SendSMS(ctx context.Context, toPhone, body string) error {
	if ch.gatewayURL == "" {
		return fmt.Errorf("SMS gateway not configured")
	}

	messageID := uuid.NewString()

	payload, err := json.Marshal(map[string]string{
		"id":   messageID,
		"to":   toPhone,
		"body": body,
	})
	if err != nil {
		return fmt.Errorf("failed to encode SMS payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ch.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ch.token != "" {
		req.Header.Set("Authorization", "Bearer "+ch.token)
	}

	resp, err := ch.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("SMS gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	log.Printf("SMS %s sent to %s", messageID, toPhone)
	return nil
}
