// Package notification sends the fixed teacher appreciation mail.
package notification

import (
	"net/mail"

	"github.com/gurumantra/backend/core"
)

const (
	AppreciationTemplate = "appreciation"
	AppreciationSubject  = "A heartfelt appreciation for your dedication and excellence"
)

type Service struct {
	mailSvc    core.EmailService
	recipients []mail.Address
}

func NewService(mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{mailSvc: mailSvc, recipients: conf.MailRecipients()}
}

// NewAppreciationMessage builds the appreciation mail for the given recipients.
func NewAppreciationMessage(to []mail.Address) *core.EmailMessage {
	return &core.EmailMessage{
		To:           to,
		Subject:      AppreciationSubject,
		TemplateName: AppreciationTemplate,
	}
}

// SendAppreciation hands the appreciation mail to the mail service and returns immediately.
// It reports whether there was anyone to send it to.
func (svc *Service) SendAppreciation() bool {
	if len(svc.recipients) == 0 {
		return false
	}
	svc.mailSvc.SendMessages(NewAppreciationMessage(svc.recipients))
	return true
}
