package services

import (
	"fmt"

	"reviewdb-api/config"
	"reviewdb-api/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type MailService interface {
	SendConfirmationCode(user *models.User, code string) error
}

type mailService struct {
	cfg config.SMTPConfig
	log *logrus.Logger
}

func NewMailService(cfg config.SMTPConfig, log *logrus.Logger) MailService {
	return &mailService{cfg: cfg, log: log}
}

// SendConfirmationCode delivers the signup code synchronously; a
// transport failure propagates to the caller as a request error.
func (s *mailService) SendConfirmationCode(user *models.User, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Email Confirmation")
	m.SetBody("text/plain", fmt.Sprintf("Confirmation code for user %s: %s", user.Username, code))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		s.log.WithFields(logrus.Fields{
			"username": user.Username,
			"email":    user.Email,
		}).WithError(err).Error("failed to send confirmation email")
		return fmt.Errorf("send confirmation email: %w", err)
	}

	s.log.WithField("username", user.Username).Info("confirmation email sent")
	return nil
}
