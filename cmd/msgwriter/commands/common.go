package commands

import (
	"net/mail"
	"os"

	"github.com/yuphing-ong/outlook-msg-writer/mapi"
	"github.com/yuphing-ong/outlook-msg-writer/msgerr"
	"github.com/yuphing-ong/outlook-msg-writer/msgmodel"
)

type msgAddrRole mapi.RecipientType

const (
	msgAddrTo  = msgAddrRole(mapi.RecipientTo)
	msgAddrCc  = msgAddrRole(mapi.RecipientCc)
	msgAddrBcc = msgAddrRole(mapi.RecipientBcc)
)

// addAddressFlags parses each "email" or "Name <email>" entry with
// net/mail.ParseAddress and appends it to m's recipient table under role.
func addAddressFlags(m *msgmodel.Message, entries []string, role msgAddrRole) error {
	for _, raw := range entries {
		addr, err := mail.ParseAddress(raw)
		if err != nil {
			return &msgerr.ValidationError{Field: "recipient address", Reason: raw + ": " + err.Error()}
		}
		if err := m.AddRecipient(msgmodel.Recipient{
			Email:       addr.Address,
			DisplayName: addr.Name,
			Type:        mapi.RecipientType(role),
			AddrType:    "SMTP",
		}); err != nil {
			return err
		}
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &msgerr.IoError{Op: "read " + path, Err: err}
	}
	return data, nil
}
