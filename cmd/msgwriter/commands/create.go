package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yuphing-ong/outlook-msg-writer/msgmodel"
	"github.com/yuphing-ong/outlook-msg-writer/msgwriter"
)

// NewCreateCommand returns the "create" subcommand: one .msg file from
// flags (spec §6's CLI surface).
func NewCreateCommand() *cobra.Command {
	var (
		subject     string
		body        string
		isHTML      bool
		fromEmail   string
		fromName    string
		to          []string
		cc          []string
		bcc         []string
		attachments []string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a single .msg file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}

			m := msgmodel.New()
			m.SetSubject(subject)
			m.SetBody(body, isHTML)
			if fromEmail != "" {
				if err := m.SetSender(fromEmail, fromName, "SMTP"); err != nil {
					return err
				}
			}
			if err := addAddressFlags(m, to, msgAddrTo); err != nil {
				return err
			}
			if err := addAddressFlags(m, cc, msgAddrCc); err != nil {
				return err
			}
			if err := addAddressFlags(m, bcc, msgAddrBcc); err != nil {
				return err
			}
			for _, path := range attachments {
				if err := addAttachmentFile(m, path); err != nil {
					return err
				}
			}

			if err := msgwriter.SaveFile(m, out); err != nil {
				return err
			}
			fmt.Printf("created %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "message subject")
	cmd.Flags().StringVar(&body, "body", "", "message body")
	cmd.Flags().BoolVar(&isHTML, "html", false, "treat --body as HTML")
	cmd.Flags().StringVar(&fromEmail, "from", "", "sender email address")
	cmd.Flags().StringVar(&fromName, "from-name", "", "sender display name")
	cmd.Flags().StringSliceVar(&to, "to", nil, "TO recipient, as \"email\" or \"Name <email>\"; repeatable")
	cmd.Flags().StringSliceVar(&cc, "cc", nil, "CC recipient; repeatable")
	cmd.Flags().StringSliceVar(&bcc, "bcc", nil, "BCC recipient; repeatable")
	cmd.Flags().StringSliceVar(&attachments, "attach", nil, "path to a file to attach; repeatable")
	cmd.Flags().StringVar(&out, "out", "", "output .msg path (required)")

	return cmd
}

func addAttachmentFile(m *msgmodel.Message, path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	return m.AddAttachment(msgmodel.Attachment{
		Filename: filepath.Base(path),
		Data:     data,
	})
}
