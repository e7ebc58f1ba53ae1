package mapi

// Tag is a 16-bit PidTag* numeric identifier. Tags are not unique across
// types; a (Tag, PropertyType) pair identifies a storable property.
type Tag uint16

// Common MAPI property tags, transcribed from MS-OXPROPS. Grounded on
// pymsgkit/properties.go's PropertyTag class (original_source).
const (
	// Message envelope properties.
	PR_MESSAGE_CLASS      Tag = 0x001A
	PR_SUBJECT            Tag = 0x0037
	PR_CONVERSATION_TOPIC Tag = 0x0070
	PR_CONVERSATION_INDEX Tag = 0x0071
	PR_IMPORTANCE         Tag = 0x0017
	PR_PRIORITY           Tag = 0x0026
	PR_SENSITIVITY        Tag = 0x0036
	PR_MESSAGE_FLAGS      Tag = 0x0E07
	PR_MESSAGE_SIZE       Tag = 0x0E08

	// Time properties.
	PR_CLIENT_SUBMIT_TIME     Tag = 0x0039
	PR_MESSAGE_DELIVERY_TIME  Tag = 0x0E06
	PR_CREATION_TIME          Tag = 0x3007
	PR_LAST_MODIFICATION_TIME Tag = 0x3008

	// Body properties.
	PR_BODY                  Tag = 0x1000
	PR_HTML                  Tag = 0x1013
	PR_RTF_COMPRESSED        Tag = 0x1009
	PR_BODY_CONTENT_LOCATION Tag = 0x1014
	PR_BODY_CONTENT_ID       Tag = 0x1015

	// Internet headers and message ID.
	PR_TRANSPORT_MESSAGE_HEADERS Tag = 0x007D
	PR_INTERNET_MESSAGE_ID       Tag = 0x1035
	PR_IN_REPLY_TO_ID            Tag = 0x1042
	PR_INTERNET_REFERENCES       Tag = 0x1039

	// Sender properties.
	PR_SENDER_NAME          Tag = 0x0C1A
	PR_SENDER_EMAIL_ADDRESS Tag = 0x0C1F
	PR_SENDER_ADDRTYPE      Tag = 0x0C1E
	PR_SENDER_ENTRYID       Tag = 0x0C19
	PR_SENDER_SEARCH_KEY    Tag = 0x0C1D

	// Sent-representing properties (the "on behalf of" identity).
	PR_SENT_REPRESENTING_NAME          Tag = 0x0042
	PR_SENT_REPRESENTING_EMAIL_ADDRESS Tag = 0x0065
	PR_SENT_REPRESENTING_ADDRTYPE      Tag = 0x0064
	PR_SENT_REPRESENTING_ENTRYID       Tag = 0x0041
	PR_SENT_REPRESENTING_SEARCH_KEY    Tag = 0x003B

	// Recipient properties (in the recipient table).
	PR_RECIPIENT_TYPE Tag = 0x0C15
	PR_DISPLAY_NAME   Tag = 0x3001
	PR_EMAIL_ADDRESS  Tag = 0x3003
	PR_ADDRTYPE       Tag = 0x3002
	PR_ENTRYID        Tag = 0x0FFF
	PR_SEARCH_KEY     Tag = 0x300B
	PR_SMTP_ADDRESS   Tag = 0x39FE
	PR_OBJECT_TYPE    Tag = 0x0FFE // shared with PR_OBJECT_TYPE_PROP; treated as one tag (spec §9)
	PR_DISPLAY_TYPE   Tag = 0x3900

	// Recipient display properties (cached on the message).
	PR_DISPLAY_TO  Tag = 0x0E04
	PR_DISPLAY_CC  Tag = 0x0E03
	PR_DISPLAY_BCC Tag = 0x0E02

	// Attachment properties.
	PR_ATTACH_NUM              Tag = 0x0E21
	PR_ATTACH_SIZE             Tag = 0x0E20
	PR_ATTACH_FILENAME         Tag = 0x3704
	PR_ATTACH_LONG_FILENAME    Tag = 0x3707
	PR_ATTACH_EXTENSION        Tag = 0x3703
	PR_ATTACH_METHOD           Tag = 0x3705
	PR_ATTACH_DATA_BIN         Tag = 0x3701
	PR_ATTACH_MIME_TAG         Tag = 0x370E
	PR_ATTACH_CONTENT_ID       Tag = 0x3712
	PR_ATTACH_CONTENT_LOCATION Tag = 0x3713
	PR_RENDERING_POSITION      Tag = 0x370B
	PR_ATTACHMENT_HIDDEN       Tag = 0x7FFE
	PR_ATTACHMENT_FLAGS        Tag = 0x3714

	// Named-property mapping streams.
	PR_MAPPING_SIGNATURE Tag = 0x0FF8
	PR_RECORD_KEY        Tag = 0x0FF9
	PR_STORE_RECORD_KEY  Tag = 0x0FFA
	PR_STORE_ENTRYID     Tag = 0x0FFB

	// Exchange / store-level properties.
	PR_HASATTACH           Tag = 0x0E1B
	PR_MESSAGE_CODEPAGE    Tag = 0x3FFD
	PR_INTERNET_CPID       Tag = 0x3FDE
	PR_MESSAGE_LOCALE_ID   Tag = 0x3FF1
	PR_CREATOR_NAME        Tag = 0x3FF8
	PR_CREATOR_ENTRYID     Tag = 0x3FF9
	PR_LAST_MODIFIER_NAME  Tag = 0x3FFA
	PR_LAST_MODIFIER_ENTRYID Tag = 0x3FFB

	// PR_STORE_SUPPORT_MASK is referenced in MS-OXPROPS but left undefined
	// by the source material; the commonly-used tag is assigned per
	// spec §9's Open Question resolution.
	PR_STORE_SUPPORT_MASK Tag = 0x340D

	// Additional message properties.
	PR_READ_RECEIPT_REQUESTED                 Tag = 0x0029
	PR_ORIGINATOR_DELIVERY_REPORT_REQUESTED    Tag = 0x0023
	PR_REPLY_RECIPIENT_ENTRIES                Tag = 0x004F
	PR_REPLY_RECIPIENT_NAMES                  Tag = 0x0050

	// Message status.
	PR_MSG_STATUS Tag = 0x0E17
)
