package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

func newFillCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the form interactively and print the values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadDocument(cmd.Context())
			if err != nil {
				return err
			}

			options := []tui.Option{
				tui.WithOutputFormat(tui.OutputFormat(a.cfg.Format)),
				tui.WithConfirmSubmit(a.cfg.Confirm),
				tui.WithMaxRetries(a.cfg.MaxRetries),
				tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
			}
			if a.driver != nil {
				options = append(options, tui.WithPromptDriver(a.driver))
			} else {
				options = append(options, tui.WithPromptDriver(tui.NewSurveyDriver(a.errOut)))
			}
			registry := render.NewRegistry()
			prompts, err := tui.Register(registry, options...)
			if err != nil {
				return err
			}

			formOpts, err := a.formOptions(doc)
			if err != nil {
				return err
			}
			f, err := doc.New(registry, formOpts...)
			if err != nil {
				return err
			}
			session, err := tui.NewSession(prompts, f)
			if err != nil {
				return err
			}
			if err := session.Fill(cmd.Context()); err != nil {
				return err
			}

			payload, err := tui.Encode(f.Values(), prompts.OutputFormat())
			if err != nil {
				return err
			}
			a.logger.Info("form filled", zap.String("form", doc.Name), zap.Bool("dirty", f.Dirty()))
			return a.write(append(payload, '\n'))
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "", "output file (stdout if empty)")
	flags.String("format", "json", "output format (json, form, pretty)")
	flags.Bool("confirm", false, "ask for confirmation before printing")
	flags.Int("max-retries", 3, "prompts per field while it stays invalid")
	return cmd
}
