package notify

import (
	"fmt"
	"time"
)

func VerificationCodeEmail(to, name, code string, ttl time.Duration) Email {
	return Email{
		ToEmail: to,
		ToName:  name,
		Subject: "Your verification code",
		Text:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(ttl.Minutes())),
		HTML:    fmt.Sprintf(`<p>Your verification code is <b>%s</b>.</p><p>It expires in %d minutes.</p>`, code, int(ttl.Minutes())),
	}
}

func AppointmentBookedEmail(to, name, service string, start time.Time) Email {
	when := start.UTC().Format("Mon, 02 Jan 2006 15:04 MST")
	return Email{
		ToEmail: to,
		ToName:  name,
		Subject: "Appointment booked",
		Text:    fmt.Sprintf("Your %s appointment is booked for %s.", service, when),
		HTML:    fmt.Sprintf(`<p>Your <b>%s</b> appointment is booked for %s.</p>`, service, when),
	}
}

func AppointmentStatusEmail(to, name, service, status string, start time.Time) Email {
	when := start.UTC().Format("Mon, 02 Jan 2006 15:04 MST")
	return Email{
		ToEmail: to,
		ToName:  name,
		Subject: "Appointment " + status,
		Text:    fmt.Sprintf("Your %s appointment on %s is now %s.", service, when, status),
	}
}
