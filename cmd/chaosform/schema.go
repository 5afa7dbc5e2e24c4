package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSchemaCommand(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI components for every kind and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.registry.OpenAPIDocument().MarshalJSON()
			if err != nil {
				return fmt.Errorf("schema: marshal: %w", err)
			}
			if asYAML {
				var doc any
				if err := json.Unmarshal(data, &doc); err != nil {
					return fmt.Errorf("schema: convert: %w", err)
				}
				out, err := yaml.Marshal(doc)
				if err != nil {
					return fmt.Errorf("schema: convert: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, data, "", "  "); err != nil {
				return fmt.Errorf("schema: indent: %w", err)
			}
			buf.WriteByte('\n')
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of JSON")
	return cmd
}
