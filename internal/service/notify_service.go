package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"kembara/internal/config"
	"kembara/internal/db"
)

// NotifyService delivers booking status emails and SMS. Everything here is
// best effort: delivery happens on a goroutine and failures only log.
type NotifyService struct {
	sendgrid config.SendGridConfig
	twilio   config.TwilioConfig
}

func NewNotifyService(sg config.SendGridConfig, tw config.TwilioConfig) *NotifyService {
	return &NotifyService{sendgrid: sg, twilio: tw}
}

func (s *NotifyService) BookingStatusChanged(booking *db.Booking, customer *db.Customer, status string) {
	go s.send(booking, customer, status)
}

func (s *NotifyService) send(booking *db.Booking, customer *db.Customer, status string) {
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	if err != nil {
		loc = time.FixedZone("MYT", 8*60*60)
	}

	pickup := booking.PickupDatetime.In(loc).Format("02 Jan 2006 15:04")
	drop := booking.DropDatetime.In(loc).Format("02 Jan 2006 15:04")

	if customer.Email != nil && *customer.Email != "" {
		subject := fmt.Sprintf("Your Kembara booking is %s", status)
		body := fmt.Sprintf(
			"Hello %s,\n\nYour booking is now %s.\n\n"+
				"Pickup: %s (%s)\n"+
				"Drop: %s (%s)\n"+
				"Total: RM %.2f\n\n"+
				"Thank you for choosing Kembara Rentals.",
			customer.Name, status,
			pickup, booking.PickupLocation,
			drop, booking.DropLocation,
			booking.TotalAmount,
		)
		if err := s.sendEmail(*customer.Email, customer.Name, subject, body); err != nil {
			log.Printf("Booking %s: email notification failed: %v", booking.ID, err)
		}
	}

	if customer.Phone != nil && *customer.Phone != "" {
		msg := fmt.Sprintf("Kembara: your booking is %s. Pickup %s at %s. Details in your email.",
			status, pickup, booking.PickupLocation)
		if err := s.sendSMS(*customer.Phone, msg); err != nil {
			log.Printf("Booking %s: SMS notification failed: %v", booking.ID, err)
		}
	}
}

func (s *NotifyService) sendEmail(toEmail, toName, subject, body string) error {
	if s.sendgrid.APIKey == "" || s.sendgrid.FromEmail == "" {
		return fmt.Errorf("SendGrid is not configured")
	}

	from := mail.NewEmail(s.sendgrid.FromName, s.sendgrid.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.sendgrid.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *NotifyService) sendSMS(toNumber, messageBody string) error {
	if s.twilio.AccountSID == "" || s.twilio.AuthToken == "" || s.twilio.FromNumber == "" {
		return fmt.Errorf("Twilio credentials are not configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("Destination number '%s' is not E.164, the SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: s.twilio.AccountSID,
		Password: s.twilio.AuthToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.twilio.FromNumber)
	params.SetBody(messageBody)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("sending SMS: %w", err)
	}
	return nil
}
