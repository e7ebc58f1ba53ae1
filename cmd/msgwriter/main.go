// Command msgwriter is a CLI front-end for the msgwriter library: it
// builds an Outlook-compatible .msg file from flags, or from a CSV batch
// of recipients (spec §6).
//
// Grounded on original_source/examples/batch_generation.py for the
// batch/CSV shape, structured as marmos91-dittofs' cmd/*/commands
// cobra-subcommand tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuphing-ong/outlook-msg-writer/cmd/msgwriter/commands"
)

func main() {
	root := &cobra.Command{
		Use:   "msgwriter",
		Short: "Generate Outlook-compatible .msg files",
		Long: `msgwriter builds Outlook-compatible .msg files (MAPI properties in a
Compound File Binary container) without needing Outlook installed.

Examples:
  msgwriter create --subject "Hello" --body "Hi there" \
    --from noreply@example.com --from-name "Notifier" \
    --to alice@example.com --out hello.msg

  msgwriter batch --csv recipients.csv --subject-template "Statement for {{.name}}" \
    --body-template "Dear {{.name}}, ..." --from noreply@example.com --out-dir ./statements`,
	}

	root.AddCommand(commands.NewCreateCommand())
	root.AddCommand(commands.NewBatchCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
