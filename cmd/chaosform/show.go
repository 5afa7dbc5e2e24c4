package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chaosform/pkg/render"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show KIND [CATEGORY]",
		Short: "Print a kind definition, or the resolved form of one category",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, category, err := kindAndCategory(args)
			if err != nil {
				return err
			}

			var doc any
			target, _ := a.registry.Lookup(kind)
			if category == "" && target.HasCategories() {
				render.LocalizeTarget(&target, a.renderOptions())
				doc = target
			} else {
				form, err := a.registry.Form(kind, category)
				if err != nil {
					return err
				}
				render.LocalizeForm(&form, a.renderOptions())
				doc = form
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("show: encode: %w", err)
			}
			return enc.Close()
		},
	}
}
