// Package email sends transactional email through Resend. Each message has
// an HTML and a plain-text body rendered from templates embedded in the
// binary.
package email

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/deppfellow/membership/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

// Template names a pair of templates/<name>.html and templates/<name>.txt.
type Template string

type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
}

// Render returns the HTML and plain-text bodies of name for data.
func Render(name Template, data any) (html, text string, err error) {
	var htmlBody, textBody bytes.Buffer

	if err := htmlTemplates.ExecuteTemplate(&htmlBody, string(name)+".html", data); err != nil {
		return "", "", errors.Wrapf(err, "rendering %s html", name)
	}
	if err := textTemplates.ExecuteTemplate(&textBody, string(name)+".txt", data); err != nil {
		return "", "", errors.Wrapf(err, "rendering %s text", name)
	}
	return htmlBody.String(), textBody.String(), nil
}

// SendEmail renders name with data and sends it to a single recipient.
// The template name is attached as a Resend tag for delivery reporting.
func (c *Client) SendEmail(to, subject string, name Template, data any) error {
	html, text, err := Render(name, data)
	if err != nil {
		return err
	}

	sent, err := c.client.Emails.Send(&resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
		Tags:    []resend.Tag{{Name: "template", Value: string(name)}},
	})
	if err != nil {
		return errors.Wrap(err, "sending email")
	}

	c.logger.Debug().
		Str("template", string(name)).
		Str("email_id", sent.Id).
		Msg("email accepted by provider")
	return nil
}
