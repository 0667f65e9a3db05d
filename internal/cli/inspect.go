package cli

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print field ids, types and validation state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadDocument(cmd.Context())
			if err != nil {
				return err
			}
			registry := render.NewRegistry()
			if _, err := tui.Register(registry, tui.WithPromptDriver(nopDriver{})); err != nil {
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

			var buf bytes.Buffer
			w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tVALUE\tVALID\tMESSAGE")
			for _, def := range f.Fields() {
				state, err := f.FieldState(def.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%q\t%t\t%s\n", def.ID, def.Type, state.Value.String(), state.Valid, state.Message)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(&buf, "\nform %s valid=%t invalid=%v\n", f.Name(), f.Valid(), f.InvalidFields())
			return a.write(buf.Bytes())
		},
	}
}
