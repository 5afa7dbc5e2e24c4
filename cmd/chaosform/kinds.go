package main

import (
	"fmt"
	"strings"

	"github.com/bndr/gotabulate"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-chaosform/pkg/render"
)

func newKindsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List experiment kinds and their categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.renderOptions()
			rows := make([][]string, 0, len(a.registry.Kinds()))
			for _, kind := range a.registry.Kinds() {
				target, ok := a.registry.Lookup(kind)
				if !ok {
					continue
				}
				render.LocalizeTarget(&target, opts)
				categories := "-"
				if target.HasCategories() {
					categories = strings.Join(target.CategoryKeys(), ", ")
				}
				rows = append(rows, []string{target.Kind, target.Name, categories})
			}
			fmt.Fprint(cmd.OutOrStdout(), table([]string{"KIND", "NAME", "CATEGORIES"}, rows))
			return nil
		},
	}
}

func table(headers []string, rows [][]string) string {
	t := gotabulate.Create(rows)
	t.SetHeaders(headers)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	return t.Render("grid")
}
