package services

import (
	"bytes"

	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"attendee.link/configs"
	"attendee.link/configs/configsmailer"
	"attendee.link/configs/configslog"
)

// IMailService sends templated HTML mail. Delivery is best-effort: failures
// are logged as structured warnings and never propagated to the caller, so
// mail can never fail a registration write.
type IMailService interface {
	Render(template string, data interface{}) (string, error)
	SendBestEffort(to, subject, html string)
}

// MailService implements IMailService over SMTP plus the html template
// engine loaded from the templates directory.
type MailService struct {
	settings configsmailer.Settings
	engine   *html.Engine
}

// NewMailService loads the template engine eagerly so a broken template
// surfaces at startup, not mid-acceptance.
func NewMailService() IMailService {
	engine := html.New(configs.GetEnv("TEMPLATE_DIR", "./templates"), ".html")
	if err := engine.Load(); err != nil {
		configslog.Log.Error("mail templates could not be loaded", zap.Error(err))
	}
	return &MailService{
		settings: configsmailer.FromEnv(),
		engine:   engine,
	}
}

// Render executes the named template with data.
func (s *MailService) Render(template string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.engine.Render(&buf, template, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendBestEffort delivers the mail, logging (not returning) any failure.
func (s *MailService) SendBestEffort(to, subject, html string) {
	if err := configsmailer.Send(s.settings, to, subject, html); err != nil {
		configslog.Log.Warn("mail delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return
	}
	configslog.SLog.Infof("mail sent: to=%s subject=%q", to, subject)
}

var _ IMailService = (*MailService)(nil)
