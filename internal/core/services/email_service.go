package services

import (
	"fmt"

	"lexcase/internal/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailService sends transactional mail through SendGrid. Every send
// is best effort, a mail failure never fails the operation that
// triggered it.
type EmailService struct {
	apiKey      string
	fromAddress string
	fromName    string
	adminInbox  string
	enabled     bool
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.MailConfig) *EmailService {
	return &EmailService{
		apiKey:      cfg.SendGridKey,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		adminInbox:  cfg.AdminInbox,
		enabled:     cfg.SendGridKey != "",
	}
}

// IsEnabled checks if mail delivery is configured
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

func (s *EmailService) send(toName, toAddress, subject, htmlBody string) {
	if !s.enabled {
		zap.S().Debugw("mail delivery disabled, skipping", "to", toAddress, "subject", subject)
		return
	}

	from := mail.NewEmail(s.fromName, s.fromAddress)
	to := mail.NewEmail(toName, toAddress)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		zap.S().Warnw("failed to send email", "to", toAddress, "subject", subject, "error", err)
		return
	}
	if resp.StatusCode >= 400 {
		zap.S().Warnw("email rejected by provider", "to", toAddress, "subject", subject, "status", resp.StatusCode, "body", resp.Body)
	}
}

// SendRegistrationReceived confirms a registration request was filed
func (s *EmailService) SendRegistrationReceived(name, email string) {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Your registration request has been received and is awaiting review by our administration.
You will be notified by email once a decision has been made.</p>
<p>Regards,<br>LexCase Chambers</p>`, name)
	go s.send(name, email, "Registration Request Received", body)
}

// SendApproval delivers the generated temporary credential
func (s *EmailService) SendApproval(name, email, tempPassword string) {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Your registration has been approved. You can now sign in with the temporary password below.</p>
<p><b>Temporary password:</b> %s</p>
<p>Please change this password after your first sign in.</p>
<p>Regards,<br>LexCase Chambers</p>`, name, tempPassword)
	go s.send(name, email, "Registration Approved", body)
}

// SendRejection informs the requester of a declined registration
func (s *EmailService) SendRejection(name, email, reason string) {
	if reason == "" {
		reason = "Your request did not meet our registration requirements."
	}
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>We are sorry to inform you that your registration request was declined.</p>
<p>%s</p>
<p>Regards,<br>LexCase Chambers</p>`, name, reason)
	go s.send(name, email, "Registration Declined", body)
}

// SendRegistrationAlert notifies the firm inbox of a new request
func (s *EmailService) SendRegistrationAlert(applicantName, role string) {
	if s.adminInbox == "" {
		return
	}
	body := fmt.Sprintf(`<p>A new registration request is awaiting review.</p>
<p><b>Applicant:</b> %s<br><b>Requested role:</b> %s</p>`, applicantName, role)
	go s.send("Administration", s.adminInbox, "New Registration Request", body)
}

// SendLawyerWelcome delivers credentials for an admin-created account
func (s *EmailService) SendLawyerWelcome(name, email, tempPassword string) {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>An account has been created for you at LexCase Chambers. You can sign in with the temporary password below.</p>
<p><b>Temporary password:</b> %s</p>
<p>Please change this password after your first sign in.</p>
<p>Regards,<br>LexCase Chambers</p>`, name, tempPassword)
	go s.send(name, email, "Your LexCase Chambers Account", body)
}

// SendPasswordReset delivers a reset link
func (s *EmailService) SendPasswordReset(name, email, resetURL string) {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>A password reset was requested for your account. Use the link below within one hour to choose a new password.</p>
<p><a href="%s">Reset your password</a></p>
<p>If you did not request this, you can ignore this message.</p>
<p>Regards,<br>LexCase Chambers</p>`, name, resetURL)
	go s.send(name, email, "Password Reset", body)
}

// SendHearingReminder reminds a party of a hearing tomorrow
func (s *EmailService) SendHearingReminder(name, email, caseTitle, courtName, when string) {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>This is a reminder that the case <b>%s</b> has a hearing scheduled at
<b>%s</b> on <b>%s</b>.</p>
<p>Regards,<br>LexCase Chambers</p>`, name, caseTitle, courtName, when)
	go s.send(name, email, "Hearing Reminder", body)
}
