package email

import (
	"fmt"
	"strings"

	"github.com/abhey8/Hospital-OPD/config"
	"github.com/abhey8/Hospital-OPD/internal/entity"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mails to patients. When disabled in config it
// silently drops every message so the calling services need no special casing.
type Sender struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
}

func NewSender(cfg *config.EmailConfig) *Sender {
	s := &Sender{cfg: cfg}
	if cfg.Enabled {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func (s *Sender) send(to, subject, htmlBody string) error {
	if s.dialer == nil {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}

type AppointmentDetails struct {
	DoctorName string
	Date       string
	Time       string
	Symptoms   string
}

func (s *Sender) SendAppointmentConfirmation(to string, details AppointmentDetails) error {
	body := fmt.Sprintf(`<h2>Appointment Confirmed!</h2>
<p>Your appointment has been successfully booked.</p>
<p><strong>Doctor:</strong> Dr. %s</p>
<p><strong>Date:</strong> %s</p>
<p><strong>Time:</strong> %s</p>
<p>Please arrive 10 minutes early for your appointment.</p>`,
		details.DoctorName, details.Date, details.Time)

	return s.send(to, "Appointment Confirmed - Hospital OPD", body)
}

func (s *Sender) SendAppointmentReminder(to string, details AppointmentDetails) error {
	body := fmt.Sprintf(`<h2>Appointment Reminder</h2>
<p>This is a reminder about your upcoming appointment tomorrow.</p>
<p><strong>Doctor:</strong> Dr. %s</p>
<p><strong>Date:</strong> %s</p>
<p><strong>Time:</strong> %s</p>
<p>Please remember to bring a valid ID proof and previous medical records.</p>`,
		details.DoctorName, details.Date, details.Time)

	return s.send(to, "Reminder: Upcoming Appointment - Hospital OPD", body)
}

func (s *Sender) SendPrescriptionReady(to, doctorName string, medications []entity.Medication) error {
	var items strings.Builder
	for _, med := range medications {
		fmt.Fprintf(&items, "<li><strong>%s</strong> - %s (%s)</li>", med.Name, med.Dosage, med.Frequency)
	}

	body := fmt.Sprintf(`<h2>Prescription Ready</h2>
<p>Dr. %s has prepared your prescription.</p>
<ul>%s</ul>
<p>You can collect your prescription from the pharmacy counter.</p>`,
		doctorName, items.String())

	return s.send(to, "Your Prescription is Ready - Hospital OPD", body)
}
