package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chaosform"
	"github.com/goliatone/go-chaosform/pkg/experiment"
	"github.com/goliatone/go-chaosform/pkg/model"
	"github.com/goliatone/go-chaosform/pkg/render"
	"github.com/goliatone/go-chaosform/pkg/renderers/html"
	"github.com/goliatone/go-chaosform/pkg/renderers/tui"
	"github.com/goliatone/go-chaosform/pkg/submission"
	"github.com/goliatone/go-chaosform/pkg/validation"
)

func newNewCommand(a *app) *cobra.Command {
	var (
		from         string
		write        string
		rendererName string
	)
	cmd := &cobra.Command{
		Use:   "new KIND [CATEGORY]",
		Short: "Fill in an experiment interactively and print the submission",
		Long: `Prompts for every editable field of KIND/CATEGORY and prints the assembled
submission in the --output encoding. Label fields take one entry per line:
an empty line finishes, "<" removes the last entry and "!clear" removes all.
Kinds with categories ask for one when CATEGORY is omitted.

With --renderer html nothing is prompted: the HTML form fragment, seeded
with the initial or --from values, is printed instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, category, err := kindAndCategory(args)
			if err != nil {
				return err
			}
			format, err := a.format()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			driver := a.promptDriver()

			var prefill *submission.Request
			if from != "" {
				data, err := readInput(cmd.InOrStdin(), from)
				if err != nil {
					return err
				}
				enc, err := inputFormat("", from)
				if err != nil {
					return err
				}
				req, err := submission.DecodeFor(string(kind), enc, data)
				if err != nil {
					return err
				}
				prefill = &req
				if category == "" {
					category = req.CategoryOf()
				}
			}

			target, _ := a.registry.Lookup(kind)
			if category == "" && target.HasCategories() {
				category, err = chooseCategory(cmd, driver, target)
				if err != nil {
					return err
				}
			}
			form, err := a.registry.Form(kind, category)
			if err != nil {
				return err
			}

			opts := a.renderOptions()
			if prefill != nil {
				opts.Values = submission.Flatten(form, prefill.Spec)
			}

			forms, err := html.New(html.WithIcons(chaosform.IconSource(a.registry)))
			if err != nil {
				return err
			}
			renderers, err := render.NewRegistry(
				tui.New(
					tui.WithPromptDriver(driver),
					tui.WithOutputFormat(format),
					tui.WithValidator(registryValidator(a.registry, kind), 0),
				),
				forms,
			)
			if err != nil {
				return err
			}
			renderer, err := renderers.Get(rendererName)
			if err != nil {
				return err
			}
			out, err := renderer.Render(ctx, form, opts)
			if err != nil {
				return err
			}
			a.logger.Debug("form rendered", "kind", kind, "category", form.Category, "renderer", renderer.Name())

			if write != "" {
				if err := os.WriteFile(write, out, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", write, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Submission written to %s\n", write)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Prefill from an existing submission file")
	cmd.Flags().StringVarP(&write, "write", "w", "", "Write the submission to a file instead of stdout")
	cmd.Flags().StringVar(&rendererName, "renderer", "tui", "Renderer to use: tui or html")
	return cmd
}

func (a *app) promptDriver() tui.PromptDriver {
	if a.driver != nil {
		return a.driver
	}
	return tui.NewSurveyDriver()
}

func chooseCategory(cmd *cobra.Command, driver tui.PromptDriver, target model.Target) (string, error) {
	names := make([]string, 0, len(target.Categories))
	for _, category := range target.Categories {
		names = append(names, category.Name)
	}
	idx, err := driver.Select(cmd.Context(), tui.SelectConfig{
		Message: target.Name + " action",
		Options: names,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(target.Categories) {
		return "", fmt.Errorf("%w: selection %d out of range", experiment.ErrUnknownCategory, idx)
	}
	return target.Categories[idx].Key, nil
}

func registryValidator(reg *experiment.Registry, kind experiment.Kind) tui.Validator {
	return func(form model.Form, values map[string]any) validation.Result {
		result, err := reg.ValidateValues(kind, form.Category, values)
		if err != nil {
			return validation.Result{Valid: false, Issues: []validation.Issue{{Message: err.Error()}}}
		}
		return result
	}
}
