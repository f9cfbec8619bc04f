package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"threadnest/internal/config"
)

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, username, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, username, resetToken string) error
	SendReplyEmail(ctx context.Context, toEmail, username, excerpt string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var emailTmpl = template.Must(template.New("email").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>{{.Title}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.Body}}</p>
  {{if .Link}}<p><a href="{{.Link}}">{{.LinkText}}</a></p>{{end}}
</div>`))

type emailData struct {
	Title    string
	Name     string
	Body     string
	Link     string
	LinkText string
}

func (s *service) sendEmail(toEmail, subject string, data emailData) error {
	var body bytes.Buffer
	if err := emailTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Threadnest <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, username, verificationToken string) error {
	return s.sendEmail(toEmail, "Verify your email", emailData{
		Title:    "Verify your email",
		Name:     username,
		Body:     "Confirm your email address to finish setting up your account.",
		Link:     fmt.Sprintf("http://%s/verify-email?token=%s", s.config.Domain, verificationToken),
		LinkText: "Verify email",
	})
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, username, resetToken string) error {
	return s.sendEmail(toEmail, "Reset your password", emailData{
		Title:    "Reset your password",
		Name:     username,
		Body:     "A password reset was requested for your account. The link expires in one hour.",
		Link:     fmt.Sprintf("http://%s/reset-password?token=%s", s.config.Domain, resetToken),
		LinkText: "Reset password",
	})
}

func (s *service) SendReplyEmail(ctx context.Context, toEmail, username, excerpt string) error {
	return s.sendEmail(toEmail, "New reply to your comment", emailData{
		Title: "You have a new reply",
		Name:  username,
		Body:  excerpt,
	})
}
