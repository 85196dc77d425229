package usecase

import (
	"bytes"
	"html/template"
	"strconv"
	textTemplate "text/template"

	"github.com/shandysiswandi/gomart/internal/checkout/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/mail"
)

const confirmationText = `Hi {{.Name}} {{.Lastname}},

We will ship your order to:

{{.Address}}
{{.Zipcode}} {{.City}}

Phone: {{.Phone}}

{{.Company}}
`

const confirmationHTML = `<p>Hi {{.Name}} {{.Lastname}},</p>
<p>We will ship your order to:</p>
<p>{{.Address}}<br>{{.Zipcode}} {{.City}}</p>
<p>Phone: {{.Phone}}</p>
<p>{{.Company}}</p>
`

var (
	confirmationTextTpl = textTemplate.Must(textTemplate.New("confirmation_text").Parse(confirmationText))
	confirmationHTMLTpl = template.Must(template.New("confirmation_html").Parse(confirmationHTML))
)

func (s *Usecase) confirmationMail(rec entity.ShippingAddress) (mail.Message, error) {
	data := map[string]any{
		"Name":     rec.Name,
		"Lastname": rec.Lastname,
		"Address":  rec.Address,
		"Zipcode":  formatNumber(rec.Zipcode),
		"City":     rec.City,
		"Phone":    formatNumber(rec.Phone),
		"Company":  s.cfg.GetString("checkout.confirmation_mail.company"),
	}

	var text, html bytes.Buffer
	if err := confirmationTextTpl.Execute(&text, data); err != nil {
		return mail.Message{}, err
	}
	if err := confirmationHTMLTpl.Execute(&html, data); err != nil {
		return mail.Message{}, err
	}

	return mail.Message{
		From:     s.cfg.GetString("checkout.confirmation_mail.from"),
		To:       []string{rec.Email},
		Subject:  s.cfg.GetString("checkout.confirmation_mail.subject"),
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}

// formatNumber prints a coerced form number without exponent notation.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
