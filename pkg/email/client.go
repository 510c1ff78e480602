// Package email delivers reminders over SMTP.
package email

import (
	"gopkg.in/mail.v2"
)

const subject = "Напоминание"

type Client struct {
	from   string
	dialer *mail.Dialer
	send   func(...*mail.Message) error
}

func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	dialer := mail.NewDialer(smtpHost, smtpPort, username, password)

	return &Client{
		from:   from,
		dialer: dialer,
		send:   dialer.DialAndSend,
	}
}

// Send mails msg to the address to.
func (c *Client) Send(to string, msg string) error {
	return c.send(c.newMessage(to, msg))
}

func (c *Client) newMessage(to, msg string) *mail.Message {
	message := mail.NewMessage()

	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)

	message.SetBody("text/plain", msg)

	return message
}
