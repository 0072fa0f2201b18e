package utils

import (
	"io"

	"gopkg.in/gomail.v2"
)

// Attachment is a file added to an outgoing email. Open is called when the
// message is written, so large uploads are streamed rather than buffered.
type Attachment struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// Email is a plain-text message.
type Email struct {
	To          []string
	ReplyTo     string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer sends emails.
type Mailer interface {
	Send(msg Email) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

func (m *SMTPMailer) Send(msg Email) error {
	return m.dialer.DialAndSend(buildMessage(m.from, msg))
}

func buildMessage(from string, msg Email) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", msg.To...)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	for _, a := range msg.Attachments {
		open := a.Open
		gm.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			r, err := open()
			if err != nil {
				return err
			}
			defer r.Close()
			_, err = io.Copy(w, r)
			return err
		}))
	}
	return gm
}

func SendEmail(to, subject, body, smtpHost string, smtpPort int, smtpUser, smtpPass string) error {
	return NewSMTPMailer(smtpHost, smtpPort, smtpUser, smtpPass).Send(Email{
		To:      []string{to},
		Subject: subject,
		Body:    body,
	})
}
