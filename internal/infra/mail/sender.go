package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"github.com/claimconnect/leadcore/internal/entity"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendCode pushes the passcode through the carrier's email-to-SMS gateway.
// Gateways truncate aggressively, so the body is one short plain-text line.
func (s *EmailSender) SendCode(ctx context.Context, destination string, channel entity.Channel, code string) error {
	to := fmt.Sprintf("%s@%s", destination, channel.GatewayDomain)

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send code via %s gateway: %w", channel.Name, err)
	}

	return nil
}

// SendLead mails a delivered lead to the buyer's notification address.
func (s *EmailSender) SendLead(to string, lead *entity.Lead) error {
	data := LeadEmailData{
		LeadID:       lead.ID,
		Phone:        lead.Phone,
		Email:        lead.Email,
		Tier:         string(lead.Tier),
		Score:        lead.Score,
		EstimateLow:  lead.EstimateLow,
		EstimateHigh: lead.EstimateHigh,
		IncidentType: string(lead.Answers.IncidentType),
		InjuryType:   string(lead.Answers.InjuryType),
	}

	tmplPath := filepath.Join("templates", "new_lead.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parse lead email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("execute lead email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New %s lead: %s", data.Tier, data.Phone))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead email: %w", err)
	}

	return nil
}
