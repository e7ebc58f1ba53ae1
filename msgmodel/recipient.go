package msgmodel

import "github.com/yuphing-ong/outlook-msg-writer/mapi"

// Recipient is one entry of the message's recipient table. Identity is
// positional — the recipient's index in Message.Recipients becomes its
// __recip_version1.0_#NNNNNNNN storage index.
//
// validate tags back msgmodel.AddRecipient's use of
// github.com/go-playground/validator/v10, surfacing a bad address as a
// msgerr.ValidationError rather than the Python original's unchecked
// add_recipient (pymsgkit/writer.go, original_source).
type Recipient struct {
	Email       string             `validate:"required,email"`
	DisplayName string             `validate:"required"`
	Type        mapi.RecipientType `validate:"required"`
	AddrType    string             `validate:"required"`
}
