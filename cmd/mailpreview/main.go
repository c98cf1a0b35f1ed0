package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"agentai-website-api/internal/domain"
	"agentai-website-api/internal/usecase"
	"agentai-website-api/pkg/email"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mailpreview",
	Short: "Preview the website notification emails",
	Long: `mailpreview renders a sample form submission through the same templates the
API uses, so template changes can be checked in a browser without sending mail.`,
	SilenceUsage: true,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a sample notification email",
	Long: `Render a sample submission for one of the form templates.

Example:
  mailpreview render --template demo --out demo.html
  mailpreview render --template about            # writes HTML to stdout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, _ := cmd.Flags().GetString("template")
		timezone, _ := cmd.Flags().GetString("timezone")
		out, _ := cmd.Flags().GetString("out")

		w := cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}

		subject, err := renderPreview(w, domain.Template(tmpl), timezone)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Subject: %s\n", subject)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("template", string(domain.TemplateContact), "form template: contact, demo or about")
	renderCmd.Flags().String("timezone", "America/New_York", "display timezone for the submission time")
	renderCmd.Flags().String("out", "", "write HTML to this file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

// sampleSubmission fills every field a template can show
func sampleSubmission(tmpl domain.Template) *domain.Submission {
	return &domain.Submission{
		Name:          "Jordan Lee",
		Email:         "jordan@clinic.example",
		Phone:         "+1 555 0100",
		Company:       "Riverside Family Clinic",
		Role:          "Billing Manager",
		Message:       "We'd like a demo for 3 sites.\nMornings work best.",
		Template:      tmpl,
		MonthlyClaims: "1,000-5,000",
		PreferredTime: "Tuesday morning",
		Meta: &domain.SubmissionMeta{
			Referrer:  "https://www.google.com/",
			PageURL:   "https://agentai.app/" + string(tmpl.OrDefault()),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func renderPreview(w io.Writer, tmpl domain.Template, timezone string) (string, error) {
	renderer, err := email.NewRenderer(timezone)
	if err != nil {
		return "", err
	}

	client := domain.ClientInfo{IP: "203.0.113.7", UserAgent: "Mozilla/5.0 (preview)", RequestID: "preview"}
	rendered, err := renderer.Render(usecase.BuildEmailData(sampleSubmission(tmpl), client, time.Now()))
	if err != nil {
		return "", err
	}

	if _, err := io.WriteString(w, rendered.HTML); err != nil {
		return "", fmt.Errorf("write preview: %w", err)
	}
	return rendered.Subject, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
