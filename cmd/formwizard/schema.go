package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgschema "github.com/goliatone/go-formwizard/pkg/schema"
)

func newSchemaCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect wizard schemas",
	}
	cmd.AddCommand(newSchemaCheckCommand(a), newSchemaExportCommand())
	return cmd
}

func newSchemaCheckCommand(a *app) *cobra.Command {
	var source schemaFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load a schema and report structural problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := source.load(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Debug("schema loaded", "id", s.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d steps, %d fields\n", len(s.Steps), len(s.Fields()))
			return nil
		},
	}
	source.register(cmd)
	return cmd
}

func newSchemaExportCommand() *cobra.Command {
	var source schemaFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the JSON Schema of the values a wizard submits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := source.load(cmd.Context())
			if err != nil {
				return err
			}
			data, err := pkgschema.MarshalValuesJSONSchema(s)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	source.register(cmd)
	return cmd
}
