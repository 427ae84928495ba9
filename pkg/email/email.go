package email

import (
	"errors"

	"gopkg.in/gomail.v2"

	"medcenter/config"
)

var ErrNotConfigured = errors.New("SMTP не настроен")

type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Enabled сообщает, задан ли SMTP-хост. При пустой конфигурации
// отправка писем пропускается без ошибки на уровне вызывающего кода.
func (s *Sender) Enabled() bool {
	return s != nil && s.cfg.Host != ""
}

func (s *Sender) Send(to, subject, body string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	return d.DialAndSend(m)
}
