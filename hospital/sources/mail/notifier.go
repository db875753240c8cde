// hospital/sources/mail/notifier.go
package mail

import (
	"context"
	"strings"
)

type StatusNotice struct {
	PatientEmail string
	PatientName  string
	DoctorName   string
	Slot         string
	Status       string
}

// Notifier emails patients when a doctor decides on their consultation.
type Notifier struct {
	sender    Sender
	templates *Templates
}

func NewNotifier(sender Sender, templates *Templates) *Notifier {
	return &Notifier{sender: sender, templates: templates}
}

// ConsultationStatusChanged sends the email for the new status. Statuses with
// no template send nothing.
func (n *Notifier) ConsultationStatusChanged(ctx context.Context, notice StatusNotice) error {
	name := strings.ToLower(notice.Status)
	if !n.templates.Has(name) {
		return nil
	}
	msg, err := n.templates.Render(name, notice)
	if err != nil {
		return err
	}
	msg.To = notice.PatientEmail
	msg.ToName = notice.PatientName
	return n.sender.Send(ctx, msg)
}
