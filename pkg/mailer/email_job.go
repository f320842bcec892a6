package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects one of the known templates; Data feeds its placeholders.
// Raw Subject/Text/HTML may be set instead for one-off mails.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "appointment_confirmed", "appointment_cancelled"
	Data     map[string]any `json:"data,omitempty"`
}

const (
	TemplateWelcome              = "welcome"
	TemplateAppointmentConfirmed = "appointment_confirmed"
	TemplateAppointmentCancelled = "appointment_cancelled"
)
