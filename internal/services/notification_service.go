// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/lweber/gameshop-backend/internal/config"
	"github.com/lweber/gameshop-backend/internal/models"
)

// Mailer is the mail collaborator: one stateless send per call, no
// retries. Failures are the caller's to log.
type Mailer interface {
	Send(to, subject, text, html string) error
}

type NotificationService struct {
	mailer Mailer
	shop   config.ShopConfig
}

type EmailTemplate struct {
	Subject string
	Text    string
	HTML    string
}

// OrderEmailItem carries the submitted cart line as rendered into the
// mails; title and price exist only here, they are never persisted on
// the line item.
type OrderEmailItem struct {
	Title    string
	Price    float64
	Quantity int
}

func NewNotificationService(mailer Mailer, shop config.ShopConfig) *NotificationService {
	return &NotificationService{
		mailer: mailer,
		shop:   shop,
	}
}

func NewSMTPMailer(cfg config.EmailConfig) Mailer {
	return &smtpMailer{config: cfg}
}

func (s *NotificationService) SendOrderConfirmation(order *models.Order, items []OrderEmailItem) error {
	data := map[string]interface{}{
		"CustomerName": order.CustomerName,
		"OrderID":      order.ID,
		"Items":        items,
		"TotalAmount":  fmt.Sprintf("%.2f", order.TotalAmount),
		"ShopName":     s.shop.Name,
	}

	subject := fmt.Sprintf("Your %s order confirmation", s.shop.Name)
	return s.send(order.CustomerEmail, subject, "order_confirmation", data)
}

func (s *NotificationService) SendOrderAlert(order *models.Order, items []OrderEmailItem) error {
	data := map[string]interface{}{
		"CustomerName":  order.CustomerName,
		"CustomerEmail": order.CustomerEmail,
		"OrderID":       order.ID,
		"Code":          order.Code,
		"AssignedTo":    order.AssignedTo,
		"Items":         items,
		"TotalAmount":   fmt.Sprintf("%.2f", order.TotalAmount),
		"ShopName":      s.shop.Name,
	}

	subject := fmt.Sprintf("New order %s", order.ID)
	return s.send(s.shop.OperatorEmail, subject, "order_alert", data)
}

func (s *NotificationService) send(to, subject, templateName string, data map[string]interface{}) error {
	tmpl, ok := emailTemplates[templateName]
	if !ok {
		return fmt.Errorf("unknown email template: %s", templateName)
	}

	text, err := renderTemplate(tmpl.Text, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	html, err := renderTemplate(tmpl.HTML, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.mailer.Send(to, subject, text, html)
}

func renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

type smtpMailer struct {
	config config.EmailConfig
}

func (m *smtpMailer) Send(to, subject, text, html string) error {
	if m.config.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email skipped, SMTP not configured")
		return nil
	}

	auth := smtp.PlainAuth("", m.config.SMTPUsername, m.config.SMTPPassword, m.config.SMTPHost)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.config.FromName, m.config.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")

	if html == "" {
		fmt.Fprintf(&msg, "Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		msg.WriteString(text)
	} else {
		boundary := "gameshop-alt"
		fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
		fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n", boundary, text)
		fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n", boundary, html)
		fmt.Fprintf(&msg, "--%s--\r\n", boundary)
	}

	addr := fmt.Sprintf("%s:%s", m.config.SMTPHost, m.config.SMTPPort)
	return smtp.SendMail(addr, auth, m.config.FromEmail, []string{to}, msg.Bytes())
}

var emailTemplates = map[string]EmailTemplate{
	"order_confirmation": {
		Text: `Hello {{.CustomerName}},

thank you for your order at {{.ShopName}}!

Order {{.OrderID}}
{{range .Items}}- {{.Title}} x{{.Quantity}} ({{printf "%.2f" .Price}} each)
{{end}}
Total: EUR {{.TotalAmount}}

Best regards,
{{.ShopName}} Team`,
		HTML: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.CustomerName}}!</h2>
	<p>Order <strong>{{.OrderID}}</strong></p>
	<table>
		<tr><th>Item</th><th>Quantity</th><th>Price</th></tr>
		{{range .Items}}<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>&euro;{{printf "%.2f" .Price}}</td></tr>
		{{end}}
	</table>
	<p>Total: <strong>&euro;{{.TotalAmount}}</strong></p>
	<p>Best regards,<br>{{.ShopName}} Team</p>
</body>
</html>`,
	},
	"order_alert": {
		Text: `New order {{.OrderID}}

Customer: {{.CustomerName}} ({{.CustomerEmail}})
Access code: {{.Code}} (assigned to {{.AssignedTo}})
{{range .Items}}- {{.Title}} x{{.Quantity}} ({{printf "%.2f" .Price}} each)
{{end}}
Total: EUR {{.TotalAmount}}`,
		HTML: `
<!DOCTYPE html>
<html>
<body>
	<h2>New order {{.OrderID}}</h2>
	<p>Customer: {{.CustomerName}} ({{.CustomerEmail}})</p>
	<p>Access code: {{.Code}} (assigned to {{.AssignedTo}})</p>
	<table>
		<tr><th>Item</th><th>Quantity</th><th>Price</th></tr>
		{{range .Items}}<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>&euro;{{printf "%.2f" .Price}}</td></tr>
		{{end}}
	</table>
	<p>Total: <strong>&euro;{{.TotalAmount}}</strong></p>
</body>
</html>`,
	},
}
