// file: internals/features/notices/service/mailer.go
package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
)

const (
	defaultSender     = "office@linksclub.org.uk"
	defaultSenderName = "Links Golf Club"
)

// Notifier sends renewal notices through the MailJet API. Without API keys it
// runs in dry-run mode: sends are logged but no mail leaves the building,
// which is what the test suite and local development rely on.
type Notifier struct {
	mutex      sync.Mutex
	sender     string
	senderName string
	publicKey  string
	privateKey string
}

// Option is a functional option supplied to Init.
type Option func(*Notifier) error

// WithSender sets the sender email address.
func WithSender(sender string) Option {
	return func(n *Notifier) error {
		n.sender = sender
		return nil
	}
}

// WithSenderName sets the display name on outgoing mail.
func WithSenderName(name string) Option {
	return func(n *Notifier) error {
		n.senderName = name
		return nil
	}
}

// WithKeys applies the MailJet public and private API keys. Required for
// real delivery; omit during testing.
func WithKeys(publicKey, privateKey string) Option {
	return func(n *Notifier) error {
		n.publicKey = publicKey
		n.privateKey = privateKey
		return nil
	}
}

// Init initializes the notifier with the supplied options. Re-initializing
// is permitted; missing options revert to their defaults.
func (n *Notifier) Init(options ...Option) error {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.sender = defaultSender
	n.senderName = defaultSenderName
	n.publicKey = ""
	n.privateKey = ""

	for i, opt := range options {
		if err := opt(n); err != nil {
			return fmt.Errorf("could not apply option # %d, %v", i, err)
		}
	}
	return nil
}

// DryRun reports whether the notifier lacks API keys and will only log.
func (n *Notifier) DryRun() bool {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return n.publicKey == "" || n.privateKey == ""
}

// Send delivers one notice to one recipient.
func (n *Notifier) Send(ctx context.Context, recipient, recipientName string, notice Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.publicKey == "" || n.privateKey == "" {
		log.Printf("[NOTICES] dry-run: would send %q to %s", notice.Subject, recipient)
		return nil
	}

	log.Printf("[NOTICES] sending %q to %s", notice.Subject, recipient)

	clt := mailjet.NewMailjetClient(n.publicKey, n.privateKey)
	info := []mailjet.InfoMessagesV31{{
		From:     &mailjet.RecipientV31{Email: n.sender, Name: n.senderName},
		To:       &mailjet.RecipientsV31{mailjet.RecipientV31{Email: recipient, Name: recipientName}},
		Subject:  notice.Subject,
		HTMLPart: notice.HTMLBody,
	}}

	msgs := mailjet.MessagesV31{Info: info}
	if _, err := clt.SendMailV31(&msgs); err != nil {
		return fmt.Errorf("could not send mail: %w", err)
	}
	return nil
}
