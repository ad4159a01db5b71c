package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		source     schemaFlags
		session    string
		newSession bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill in a wizard interactively in the terminal",
		Long: "Prompts for every field step by step. Answers are saved after each field " +
			"and restored on the next run with the same session; the submitted values " +
			"are written to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			outputFormat, err := tui.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			s, err := source.load(ctx)
			if err != nil {
				return err
			}

			st, err := a.cfg.OpenStore()
			if err != nil {
				return err
			}
			defer st.Close()

			key := session
			switch {
			case newSession:
				key = uuid.NewString()
				fmt.Fprintf(cmd.ErrOrStderr(), "session: %s\n", key)
			case key == "" && s.ID != "":
				key = s.ID
			case key == "":
				key = wizard.DefaultSessionKey
			}

			engine := wizard.New(s,
				wizard.WithStore(st),
				wizard.WithSessionKey(key),
				wizard.WithLogger(a.logger),
				wizard.WithSubmitValidation(wizard.SubmitValidateAll),
			)
			runner := tui.NewRunner(
				tui.WithOutputFormat(outputFormat),
				tui.WithOutput(cmd.OutOrStdout()),
			)
			_, err = runner.Run(ctx, engine)
			return err
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&session, "session", "", "storage key of the session (default: schema id)")
	cmd.Flags().BoolVar(&newSession, "new-session", false, "start under a fresh random session key")
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	cmd.MarkFlagsMutuallyExclusive("session", "new-session")
	return cmd
}
