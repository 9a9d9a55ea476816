package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/Dosada05/chessmate-central/config"
	"github.com/Dosada05/chessmate-central/models"
)

//go:embed templates/*.html
var emailTemplates embed.FS

type EmailService struct {
	cfg       *config.Config
	templates *template.Template
	// send is SendEmail unless replaced in tests
	send func(to []string, subject, body string) error
}

func NewEmailService(cfg *config.Config) (*EmailService, error) {
	t, err := template.ParseFS(emailTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга шаблонов писем: %w", err)
	}
	s := &EmailService{cfg: cfg, templates: t}
	s.send = s.SendEmail
	return s, nil
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	tlsconfig := &tls.Config{ServerName: s.cfg.SMTPHost, MinVersion: tls.VersionTLS12}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Прямое TLS-соединение (обычно порт 465)
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("ошибка TLS соединения: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("ошибка создания SMTP клиента: %w", err)
		}
	} else {
		// STARTTLS (обычно порт 587)
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("ошибка соединения SMTP: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("ошибка команды STARTTLS: %w", err)
		}
	}
	defer client.Quit()

	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("ошибка аутентификации SMTP: %w", err)
		}
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("ошибка MAIL FROM: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("ошибка RCPT TO: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("ошибка команды DATA: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("ошибка записи сообщения: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия DATA: %w", err)
	}
	return nil
}

func (s *EmailService) GenerateEmailBody(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("ошибка выполнения шаблона %s: %w", name, err)
	}
	return body.String(), nil
}

// SendRegistrationConfirmation implements RegistrationNotifier.
func (s *EmailService) SendRegistrationConfirmation(ctx context.Context, reg *models.PlayerRegistration, tournament *models.Tournament) error {
	if reg.PlayerEmail == nil || *reg.PlayerEmail == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data := struct {
		PlayerName     string
		TournamentName string
		Location       string
		StartDate      string
		EndDate        string
		TimeControl    string
		EntryFee       string
		FeePaid        bool
		RegistrationID string
	}{
		PlayerName:     reg.PlayerName,
		TournamentName: tournament.Name,
		Location:       tournament.Location,
		StartDate:      tournament.StartDate.Format(time.DateOnly),
		EndDate:        tournament.EndDate.Format(time.DateOnly),
		TimeControl:    tournament.TimeControl,
		EntryFee:       fmt.Sprintf("%.2f", tournament.EntryFee),
		FeePaid:        reg.FeePaid,
		RegistrationID: reg.ID,
	}

	htmlBody, err := s.GenerateEmailBody("registration_confirmation.html", data)
	if err != nil {
		return fmt.Errorf("ошибка генерации тела письма о регистрации: %w", err)
	}
	subject := fmt.Sprintf("Registration received: %s", tournament.Name)
	return s.send([]string{*reg.PlayerEmail}, subject, htmlBody)
}
