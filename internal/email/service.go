package email

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"muniportal/internal/config"
	"net/smtp"
	"sync"
)

// EmailSender defines the interface for sending account notifications.
// Callers treat every send as fire-and-forget: failures are logged at the
// call site and never surfaced to the HTTP response.
type EmailSender interface {
	SendAccountCreated(to, fullName, email string) error
	SendAccountSuspended(to, fullName string) error
	SendAccountDeleted(to, fullName string) error
}

// Service implements the EmailSender interface over SMTP
type Service struct {
	config config.EmailConfig
	client *smtp.Client
	mu     sync.Mutex
}

func NewService(cfg config.EmailConfig) *Service {
	return &Service{
		config: cfg,
		client: nil,
	}
}

// dialSMTP establishes an SMTP connection
func (s *Service) dialSMTP() (*smtp.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Reuse existing connection if it's still alive
	if s.client != nil {
		if err := s.client.Noop(); err == nil {
			return s.client, nil
		}
		// Connection is dead, close it
		s.client.Close()
		s.client = nil
	}

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	if err := client.Auth(smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to authenticate with SMTP server: %w", err)
	}

	s.client = client
	return client, nil
}

// sendMail sends an email using a pooled SMTP connection
func (s *Service) sendMail(to []string, msg []byte) error {
	client, err := s.dialSMTP()
	if err != nil {
		return err
	}

	if err := client.Mail(s.config.SMTPUsername); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("failed to add recipient %s: %w", addr, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create message writer: %w", err)
	}

	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message writer: %w", err)
	}

	return nil
}

// Close closes the SMTP connection
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		err := s.client.Quit()
		s.client = nil
		return err
	}
	return nil
}

func (s *Service) send(to, subject, tmplText string, data map[string]string) error {
	if s.config.SMTPHost == "" || s.config.SMTPPort == 0 || s.config.SMTPUsername == "" ||
		s.config.SMTPPassword == "" || s.config.FromAddress == "" {
		return fmt.Errorf("incomplete email configuration")
	}

	tmpl, err := template.New("notification").Parse(tmplText)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s", to, s.config.FromAddress, subject, body.String())

	log.Printf("Sending notification %q to %s via SMTP server %s:%d", subject, to, s.config.SMTPHost, s.config.SMTPPort)
	return s.sendMail([]string{to}, []byte(msg))
}

func (s *Service) SendAccountCreated(to, fullName, email string) error {
	return s.send(to, "Cuenta creada en el Portal Municipal", `
		<h2>Hola {{.FullName}},</h2>
		<p>Se ha creado una cuenta para usted en el Portal Municipal.</p>
		<p>Usuario: <strong>{{.Email}}</strong></p>
		<p>Si no esperaba este correo, comuníquese con el área de sistemas.</p>
	`, map[string]string{"FullName": fullName, "Email": email})
}

func (s *Service) SendAccountSuspended(to, fullName string) error {
	return s.send(to, "Cuenta suspendida", `
		<h2>Hola {{.FullName}},</h2>
		<p>Su cuenta del Portal Municipal ha sido suspendida.</p>
		<p>Comuníquese con el área de sistemas para más información.</p>
	`, map[string]string{"FullName": fullName})
}

func (s *Service) SendAccountDeleted(to, fullName string) error {
	return s.send(to, "Cuenta eliminada", `
		<h2>Hola {{.FullName}},</h2>
		<p>Su cuenta del Portal Municipal ha sido eliminada.</p>
	`, map[string]string{"FullName": fullName})
}
