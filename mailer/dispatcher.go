package mailer

import "github.com/orientalessence/essence-api/utils"

// Dispatcher delivers rendered messages through an outbound mail transport.
type Dispatcher interface {
	Send(message Message) error
}

// SMTPDispatcher sends messages through the SMTP relay configured in the
// environment.
type SMTPDispatcher struct{}

func NewSMTPDispatcher() *SMTPDispatcher {
	return &SMTPDispatcher{}
}

func (d *SMTPDispatcher) Send(message Message) error {
	return utils.SendEmail(message.To, message.Subject, message.HTMLBody)
}
