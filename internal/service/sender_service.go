package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"shutterbook/internal/db"
	"shutterbook/internal/directory"
	"shutterbook/internal/entities"
)

// SenderService composes and dispatches booking emails and SMS. Delivery runs
// in goroutines so a slow or failing provider never holds up a request; a
// failed dispatch is logged and otherwise ignored, the booking outcome does
// not depend on it.
type SenderService struct {
	Location *time.Location
}

func NewSenderService(loc *time.Location) *SenderService {
	return &SenderService{Location: loc}
}

// SendBookingNotifications emails both the client and the studio admin and
// texts the client. user or svc may be nil when the directory lookup failed;
// whatever can still be sent, is.
func (s *SenderService) SendBookingNotifications(user *directory.User, svc *directory.Service, booking *db.Booking, status string) {
	serviceName := booking.ServiceID
	if svc != nil {
		serviceName = svc.Name
	}

	data := entities.BookingEmailData{
		BookingCode:   booking.Code,
		ServiceName:   serviceName,
		DateFormatted: booking.BookingDate.Format("02 Jan 2006"),
		TimeSlot:      booking.TimeSlot,
		Status:        status,
		CurrentYear:   time.Now().In(s.Location).Year(),
	}

	if user != nil {
		data.UserName = user.Name

		subject := fmt.Sprintf("Your photo session is %s - %s at %s", status, data.DateFormatted, data.TimeSlot)
		plainBody := fmt.Sprintf(
			"Hello %s,\n\nYour booking has been %s.\n\n"+
				"Booking details:\n"+
				"Reference: %s\n"+
				"Service: %s\n"+
				"Date: %s\n"+
				"Time: %s\n\n"+
				"Thank you for choosing our studio.",
			data.UserName, status, data.BookingCode, data.ServiceName, data.DateFormatted, data.TimeSlot,
		)
		htmlBody := s.renderEmailHTML(data)

		go func(toEmail, toName string) {
			if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBody, ""); err != nil {
				log.Printf("ALERT (async): email for booking %s failed: %v", booking.Code, err)
			}
		}(user.Email, user.Name)

		if user.Phone != "" {
			sms := fmt.Sprintf("Studio: your session on %s at %s has been %s. Details in your email.",
				data.DateFormatted, data.TimeSlot, status)
			go func(toNumber string) {
				if err := SendSMS(toNumber, sms); err != nil {
					log.Printf("ALERT (async): SMS for booking %s failed: %v", booking.Code, err)
				}
			}(user.Phone)
		}
	} else {
		log.Printf("Booking %s: no user data, skipping client notification", booking.Code)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		log.Println("WARNING: ADMIN_EMAIL is not set, skipping admin notification")
		return
	}

	clientLabel := booking.UserID
	replyTo := ""
	if user != nil {
		clientLabel = fmt.Sprintf("%s (%s)", user.Name, user.Email)
		replyTo = user.Email
	}
	adminSubject := fmt.Sprintf("Booking %s - %s at %s", status, data.DateFormatted, data.TimeSlot)
	adminBody := fmt.Sprintf(
		"Booking %s for %s on %s at %s has been %s.\nClient: %s",
		data.BookingCode, data.ServiceName, data.DateFormatted, data.TimeSlot, status, clientLabel,
	)

	go func() {
		if err := SendEmailWithSendGrid(adminEmail, "Studio Admin", adminSubject, adminBody, "", replyTo); err != nil {
			log.Printf("ALERT (async): admin email for booking %s failed: %v", booking.Code, err)
		}
	}()
}

func (s *SenderService) renderEmailHTML(data entities.BookingEmailData) string {
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: could not parse email template (%s): %v", tmplPath, err)
		return ""
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("ALERT: could not execute email template for booking %s: %v", data.BookingCode, err)
		return ""
	}
	return buf.String()
}
