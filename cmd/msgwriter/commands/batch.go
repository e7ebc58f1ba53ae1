package commands

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/yuphing-ong/outlook-msg-writer/msgerr"
	"github.com/yuphing-ong/outlook-msg-writer/msgwriter"
)

// NewBatchCommand returns the "batch" subcommand: one .msg file per row
// of a CSV file, with the subject/body templates interpolated per row.
// Grounded on original_source/examples/batch_generation.py, which loops
// a csv.DictReader and calls create_email once per recipient row.
func NewBatchCommand() *cobra.Command {
	var (
		csvPath         string
		subjectTemplate string
		bodyTemplate    string
		fromEmail       string
		fromName        string
		outDir          string
		filenameField   string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Create one .msg file per row of a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" || outDir == "" {
				return fmt.Errorf("--csv and --out-dir are required")
			}

			subjectTmpl, err := template.New("subject").Parse(subjectTemplate)
			if err != nil {
				return fmt.Errorf("parsing --subject-template: %w", err)
			}
			bodyTmpl, err := template.New("body").Parse(bodyTemplate)
			if err != nil {
				return fmt.Errorf("parsing --body-template: %w", err)
			}

			rows, err := readCSVRows(csvPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return &msgerr.IoError{Op: "create " + outDir, Err: err}
			}

			for i, row := range rows {
				subject, err := renderTemplate(subjectTmpl, row)
				if err != nil {
					return err
				}
				body, err := renderTemplate(bodyTmpl, row)
				if err != nil {
					return err
				}

				opts := msgwriter.CreateEmailOptions{
					Subject:     subject,
					Body:        body,
					SenderEmail: fromEmail,
					SenderName:  fromName,
				}
				if email, name, ok := rowAddress(row); ok {
					opts.To = []msgwriter.AddressBookEntry{{Email: email, Name: name}}
				}

				msg, err := msgwriter.CreateEmail(opts)
				if err != nil {
					return fmt.Errorf("row %d: %w", i, err)
				}

				name := filenameFor(row, filenameField, i)
				path := filepath.Join(outDir, name+".msg")
				if err := msgwriter.SaveFile(msg, path); err != nil {
					return err
				}
				fmt.Printf("created %s\n", path)
			}
			fmt.Printf("generated %d message(s) in %s\n", len(rows), outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "path to a CSV file with a header row (required)")
	cmd.Flags().StringVar(&subjectTemplate, "subject-template", "", "Go text/template for the subject, evaluated against each row")
	cmd.Flags().StringVar(&bodyTemplate, "body-template", "", "Go text/template for the body, evaluated against each row")
	cmd.Flags().StringVar(&fromEmail, "from", "", "sender email address")
	cmd.Flags().StringVar(&fromName, "from-name", "", "sender display name")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory to write generated .msg files into (required)")
	cmd.Flags().StringVar(&filenameField, "filename-field", "", "CSV column to use for each output filename; defaults to the row index")

	return cmd
}

func readCSVRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &msgerr.IoError{Op: "open " + path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, &msgerr.IoError{Op: "parse " + path, Err: err}
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func renderTemplate(tmpl *template.Template, row map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, row); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return buf.String(), nil
}

func rowAddress(row map[string]string) (email, name string, ok bool) {
	email, ok = row["email"]
	if !ok || email == "" {
		return "", "", false
	}
	return email, row["name"], true
}

func filenameFor(row map[string]string, field string, index int) string {
	if field != "" {
		if v, ok := row[field]; ok && v != "" {
			return v
		}
	}
	return fmt.Sprintf("message_%04d", index)
}
