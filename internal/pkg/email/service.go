// internal/pkg/email/service.go
package email

import (
	"bytes"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/your-org/manufacturing-backend/internal/config"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// AlertService sends low-stock alert mail to the configured recipients.
// It implements inventory.AlertNotifier.
type AlertService struct {
	config *config.Config

	// lastSent tracks the most recent alert per product so a stuck-low
	// item does not flood the inbox on every document mutation.
	// Guarded by mu since notifications fire from separate goroutines.
	mu       sync.Mutex
	lastSent map[string]time.Time
	cooldown time.Duration
}

// NewAlertService creates a new low-stock alert service
func NewAlertService(cfg *config.Config) *AlertService {
	return &AlertService{
		config:   cfg,
		lastSent: make(map[string]time.Time),
		cooldown: 6 * time.Hour,
	}
}

// NotifyLowStock sends one mail covering every item currently below its
// minimum threshold. Items alerted within the cooldown window are skipped.
func (s *AlertService) NotifyLowStock(items []inventory.Item) {
	if !s.config.Alerts.Enabled || len(items) == 0 {
		return
	}

	now := time.Now()
	s.mu.Lock()
	var due []inventory.Item
	for _, item := range items {
		if last, ok := s.lastSent[item.ProductID]; ok && now.Sub(last) < s.cooldown {
			continue
		}
		due = append(due, item)
	}
	s.mu.Unlock()
	if len(due) == 0 {
		return
	}

	subject := fmt.Sprintf("Low stock alert - %d item(s) below threshold", len(due))
	body := s.buildLowStockHTML(due)

	if err := s.send(s.config.Alerts.Recipients, subject, body); err != nil {
		log.Printf("Failed to send low stock alert: %v", err)
		return
	}

	s.mu.Lock()
	for _, item := range due {
		s.lastSent[item.ProductID] = now
	}
	s.mu.Unlock()
}

// buildLowStockHTML renders the alert body
func (s *AlertService) buildLowStockHTML(items []inventory.Item) string {
	var b strings.Builder

	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h2>%s - Low Stock Alert</h2>", s.config.App.PlantName))
	b.WriteString("<p>The following items have dropped below their minimum threshold:</p>")
	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Product ID</th><th>Name</th><th>Quantity</th><th>Threshold</th><th>Unit</th></tr>")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%g</td><td>%g</td><td>%s</td></tr>",
			item.ProductID, item.ProductName, item.Quantity, item.MinThreshold, item.Unit))
	}
	b.WriteString("</table>")
	b.WriteString(fmt.Sprintf("<p><small>Sent %s</small></p>", time.Now().Format(time.RFC1123)))
	b.WriteString("</body></html>")

	return b.String()
}

// send delivers an HTML mail over SMTP
func (s *AlertService) send(to []string, subject, htmlBody string) error {
	if s.config.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host")
	}

	var auth smtp.Auth
	if s.config.Email.SMTPUser != "" {
		auth = smtp.PlainAuth("",
			s.config.Email.SMTPUser,
			s.config.Email.SMTPPass,
			s.config.Email.SMTPHost)
	}

	from := s.config.Email.FromEmail
	if s.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	}

	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = strings.Join(to, ", ")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=\"utf-8\""

	var msg bytes.Buffer
	for key, value := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	serverAddr := fmt.Sprintf("%s:%d", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(serverAddr, auth, s.config.Email.FromEmail, to, msg.Bytes())
}
