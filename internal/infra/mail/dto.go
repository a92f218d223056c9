package mail

import (
	"time"

	"gopkg.in/gomail.v2"
)

// LeadEmailData feeds both the HTML and the plain-text notification.
type LeadEmailData struct {
	Distributor     bool
	Name            string
	Phone           string
	Email           string
	State           string
	DistrictPin     string
	InvestmentRange string
	Timeline        string
	CurrentBusiness string
	ExperienceYears string
	OutletCount     string
	BusinessType    string
	Notes           string
	SourcePage      string
	Submitted       string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string

	send func(m *gomail.Message) error
	now  func() time.Time
}
