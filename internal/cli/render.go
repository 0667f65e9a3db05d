package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
)

type pageProps struct {
	Submit string
}

func newRenderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadDocument(cmd.Context())
			if err != nil {
				return err
			}

			var options []vanilla.Option
			if a.cfg.TemplatesDir != "" {
				options = append(options, vanilla.WithTemplatesDir(a.cfg.TemplatesDir))
			}
			if a.cfg.Theme != "" || a.cfg.Variant != "" {
				options = append(options, vanilla.WithTheme(&theme.RendererConfig{
					Theme:   a.cfg.Theme,
					Variant: a.cfg.Variant,
				}))
			}
			registry := render.NewRegistry()
			html, err := vanilla.Register(registry, options...)
			if err != nil {
				return err
			}

			formOpts, err := a.formOptions(doc)
			if err != nil {
				return err
			}
			component, err := form.Build(doc.Name, registry, formdef.Factory[pageProps](doc),
				func(f *form.Form[string], props pageProps) (string, error) {
					return html.Page(f.Name(), f.Handles(), props.Submit, !f.Active())
				},
				formOpts...,
			)
			if err != nil {
				return err
			}

			props := pageProps{Submit: a.cfg.Submit}
			instance, err := component.Mount(props)
			if err != nil {
				return err
			}
			page, err := instance.Render(props)
			if err != nil {
				return err
			}
			if a.cfg.Styles {
				css, err := vanilla.Stylesheet()
				if err != nil {
					return err
				}
				page = "<style>\n" + css + "</style>\n" + page
			}
			a.logger.Info("rendered form",
				zap.String("form", doc.Name),
				zap.Bool("valid", instance.Form().Valid()),
			)
			return a.write([]byte(page + "\n"))
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "", "output file (stdout if empty)")
	flags.String("submit", "Submit", "submit button label (empty to omit)")
	flags.String("templates", "", "directory overriding the embedded widget templates")
	flags.String("theme", "", "theme name")
	flags.String("variant", "", "theme variant")
	flags.Bool("styles", false, "prepend the default stylesheet in a <style> element")
	return cmd
}
