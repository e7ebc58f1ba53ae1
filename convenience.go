package msgwriter

import (
	"github.com/yuphing-ong/outlook-msg-writer/mapi"
	"github.com/yuphing-ong/outlook-msg-writer/msgmodel"
)

// AddressBookEntry is an (email, display name) pair, used by CreateEmail
// for its recipient-list parameters.
type AddressBookEntry struct {
	Email string
	Name  string
}

// CreateEmailOptions configures CreateEmail.
type CreateEmailOptions struct {
	Subject     string
	Body        string
	IsHTML      bool
	SenderEmail string
	SenderName  string
	To          []AddressBookEntry
	Cc          []AddressBookEntry
	Bcc         []AddressBookEntry
}

// CreateEmail is a convenience constructor for the common case: subject,
// body, sender, and TO/CC/BCC recipient lists. Grounded on
// pymsgkit/__init__.go's create_email (original_source); this is ambient
// surface around the core msgmodel/cfb/mapi packages, not part of the
// core encoder itself (spec §1 names convenience constructors as an
// out-of-scope external collaborator).
func CreateEmail(opts CreateEmailOptions) (*msgmodel.Message, error) {
	m := msgmodel.New()
	m.SetSubject(opts.Subject)
	m.SetBody(opts.Body, opts.IsHTML)
	if err := m.SetSender(opts.SenderEmail, opts.SenderName, "SMTP"); err != nil {
		return nil, err
	}

	if err := addRecipients(m, opts.To, mapi.RecipientTo); err != nil {
		return nil, err
	}
	if err := addRecipients(m, opts.Cc, mapi.RecipientCc); err != nil {
		return nil, err
	}
	if err := addRecipients(m, opts.Bcc, mapi.RecipientBcc); err != nil {
		return nil, err
	}
	return m, nil
}

func addRecipients(m *msgmodel.Message, entries []AddressBookEntry, typ mapi.RecipientType) error {
	for _, e := range entries {
		if err := m.AddRecipient(msgmodel.Recipient{
			Email:       e.Email,
			DisplayName: e.Name,
			Type:        typ,
			AddrType:    "SMTP",
		}); err != nil {
			return err
		}
	}
	return nil
}
