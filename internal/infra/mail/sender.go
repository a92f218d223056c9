package mail

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

const fromName = "London Slush Leads"

// Sales works from India; submission times are shown in IST.
var ist = time.FixedZone("IST", 5*3600+30*60)

func NewEmailSender(host string, port int, user, password, from string, to []string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
		now:      time.Now,
	}
	s.send = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.User, s.Password).DialAndSend(m)
	}
	return s
}

// NotifyNewLead mails the lead to every recipient, one message each so a bad
// address does not hide the lead from the others.
func (s *EmailSender) NotifyNewLead(lead entity.Lead, kind entity.LeadKind) error {
	data := s.emailData(lead, kind)

	var html, text bytes.Buffer
	if err := leadHTML.Execute(&html, data); err != nil {
		return errors.Wrap(err, "render lead email html")
	}
	if err := leadText.Execute(&text, data); err != nil {
		return errors.Wrap(err, "render lead email text")
	}

	subject := Subject(lead, kind)

	var failed []string
	var lastErr error
	for _, to := range s.To {
		to = strings.TrimSpace(to)
		if to == "" {
			continue
		}

		m := gomail.NewMessage()
		m.SetAddressHeader("From", s.From, fromName)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", text.String())
		m.AddAlternative("text/html", html.String())

		if err := s.send(m); err != nil {
			failed = append(failed, to)
			lastErr = err
		}
	}

	if lastErr != nil {
		return errors.Wrapf(lastErr, "send lead email to %s", strings.Join(failed, ", "))
	}
	return nil
}

func Subject(lead entity.Lead, kind entity.LeadKind) string {
	if kind == entity.LeadKindDistributor {
		return "🚨 New Distributor Lead (HIGH PRIORITY): " + lead.Name
	}
	return "🔔 New Retail Lead: " + lead.Name
}

func (s *EmailSender) emailData(lead entity.Lead, kind entity.LeadKind) LeadEmailData {
	submitted := lead.CreatedAt
	if submitted.IsZero() {
		submitted = s.now()
	}

	return LeadEmailData{
		Distributor:     kind == entity.LeadKindDistributor,
		Name:            lead.Name,
		Phone:           lead.Phone,
		Email:           orNotSpecified(lead.Email, "Not provided"),
		State:           orNotSpecified(lead.State, "Not specified"),
		DistrictPin:     orNotSpecified(lead.DistrictPin, "Not specified"),
		InvestmentRange: lead.InvestmentRange,
		Timeline:        lead.Timeline,
		CurrentBusiness: orNotSpecified(lead.CurrentBusiness, "Not specified"),
		ExperienceYears: orNotSpecified(lead.ExperienceYears, "Not specified"),
		OutletCount:     orNotSpecified(lead.OutletCount, "Not specified"),
		BusinessType:    lead.BusinessType,
		Notes:           lead.Notes,
		SourcePage:      lead.SourcePage,
		Submitted:       submitted.In(ist).Format("02/01/2006, 3:04:05 pm") + " IST",
	}
}

func orNotSpecified(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

var leadHTML = htmltemplate.Must(htmltemplate.New("lead.html").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
{{- if .Distributor}}
  <h2 style="color: #dc1f26;">⭐ New Distributor Partnership Inquiry (HIGH VALUE)</h2>
  <div style="background: #fff3cd; padding: 20px; border-radius: 8px; border-left: 4px solid #ffc107;">
    <p style="color: #856404; font-weight: bold;">🚨 HIGH PRIORITY LEAD - Investment Range: {{.InvestmentRange}}</p>
  </div>
{{- else}}
  <h2 style="color: #dc1f26;">New Retail Partnership Inquiry</h2>
{{- end}}
  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin-top: 15px;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></p>
    <p><strong>Email:</strong> {{.Email}}</p>
{{- if .Distributor}}
    <p><strong>State/UT:</strong> {{.State}}</p>
    <p><strong>District &amp; PIN:</strong> {{.DistrictPin}}</p>
{{- else}}
    <p><strong>City:</strong> {{.DistrictPin}}</p>
{{- end}}
    <p><strong>Investment Range:</strong> {{.InvestmentRange}}</p>
    <p><strong>Timeline:</strong> {{.Timeline}}</p>
    <p><strong>Current Business:</strong> {{.CurrentBusiness}}</p>
{{- if .Distributor}}
    <p><strong>Experience:</strong> {{.ExperienceYears}} years</p>
{{- end}}
    <p><strong>Outlet Count:</strong> {{.OutletCount}}</p>
    <p><strong>Business Type:</strong> {{.BusinessType}}</p>
{{- if .Notes}}
    <p><strong>Notes:</strong> {{.Notes}}</p>
{{- end}}
    <p><strong>Source:</strong> {{.SourcePage}}</p>
    <p><strong>Submitted:</strong> {{.Submitted}}</p>
  </div>
{{- if .Distributor}}
  <div style="margin-top: 20px; padding: 15px; background: #dc1f26; color: white; border-radius: 8px;">
    <p style="margin: 0; font-weight: bold;">⚡ URGENT ACTION REQUIRED</p>
    <p style="margin: 5px 0 0 0;">Contact this HIGH-VALUE distributor lead within 4 hours via phone call.</p>
  </div>
{{- else}}
  <p style="margin-top: 20px; color: #666;">
    <strong>Action Required:</strong> Contact this lead within 24 hours via WhatsApp or phone call.
  </p>
{{- end}}
</div>
`))

var leadText = texttemplate.Must(texttemplate.New("lead.txt").Parse(`
{{- if .Distributor}}🚨 HIGH PRIORITY: New Distributor Partnership Inquiry{{else}}New Retail Partnership Inquiry{{end}}

Name: {{.Name}}
Phone: {{.Phone}}
Email: {{.Email}}
{{if .Distributor -}}
State/UT: {{.State}}
District & PIN: {{.DistrictPin}}
{{else -}}
City: {{.DistrictPin}}
{{end -}}
Investment Range: {{.InvestmentRange}}
Timeline: {{.Timeline}}
Current Business: {{.CurrentBusiness}}
{{if .Distributor}}Experience: {{.ExperienceYears}} years
{{end -}}
Outlet Count: {{.OutletCount}}
Business Type: {{.BusinessType}}
{{if .Notes}}Notes: {{.Notes}}
{{end -}}
Source: {{.SourcePage}}
Submitted: {{.Submitted}}

{{if .Distributor}}⚡ URGENT: Contact this HIGH-VALUE distributor lead within 4 hours.{{else}}Action Required: Contact this lead within 24 hours.{{end}}
`))
