package templates

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

type definition struct {
	subject string
	text    string
	html    string
}

// Placeholders: Name, DoctorName, Date, Time, Type.
var definitions = map[string]definition{
	"welcome": {
		subject: "Welcome to MediBook",
		text: `Hi {{.Name}},

Your MediBook account is ready. You can now search doctors, book appointments and keep your medical records in one place.

— The MediBook team`,
		html: `<p>Hi {{.Name}},</p>
<p>Your MediBook account is ready. You can now search doctors, book appointments and keep your medical records in one place.</p>
<p>— The MediBook team</p>`,
	},
	"appointment_confirmed": {
		subject: "Your appointment is confirmed",
		text: `Hi {{.Name}},

Your {{.Type}} appointment with {{.DoctorName}} on {{.Date}} at {{.Time}} is confirmed.

— The MediBook team`,
		html: `<p>Hi {{.Name}},</p>
<p>Your {{.Type}} appointment with <strong>{{.DoctorName}}</strong> on {{.Date}} at {{.Time}} is confirmed.</p>
<p>— The MediBook team</p>`,
	},
	"appointment_cancelled": {
		subject: "Your appointment was cancelled",
		text: `Hi {{.Name}},

Your appointment with {{.DoctorName}} on {{.Date}} at {{.Time}} has been cancelled.

— The MediBook team`,
		html: `<p>Hi {{.Name}},</p>
<p>Your appointment with <strong>{{.DoctorName}}</strong> on {{.Date}} at {{.Time}} has been cancelled.</p>
<p>— The MediBook team</p>`,
	},
}

// Render produces subject, text body and HTML body for a named template.
func Render(name string, data map[string]any) (string, string, string, error) {
	def, ok := definitions[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	tt, err := texttpl.New(name).Parse(def.text)
	if err != nil {
		return "", "", "", err
	}
	var textBuf bytes.Buffer
	if err := tt.Execute(&textBuf, data); err != nil {
		return "", "", "", err
	}

	ht, err := htmltpl.New(name).Parse(def.html)
	if err != nil {
		return "", "", "", err
	}
	var htmlBuf bytes.Buffer
	if err := ht.Execute(&htmlBuf, data); err != nil {
		return "", "", "", err
	}

	return def.subject, textBuf.String(), htmlBuf.String(), nil
}
