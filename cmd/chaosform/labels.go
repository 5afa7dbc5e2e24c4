package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-chaosform/pkg/formstate"
	"github.com/goliatone/go-chaosform/pkg/labelfield"
	"github.com/goliatone/go-chaosform/pkg/renderers/bubble"
	"github.com/goliatone/go-chaosform/pkg/submission"
)

func newLabelsCommand(a *app) *cobra.Command {
	var (
		opts    labelfield.Options
		initial []string
	)
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Edit a token list with the label widget and print the result",
		Long: `Opens the label editor in the terminal. Type a token and press space to
add it, backspace on an empty input removes the last token, left/right select
a token for deletion and enter finishes. With --kv every token must look
like key:value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format()
			if err != nil {
				return err
			}
			doc := formstate.New(nil, nil)
			if err := seedTokens(doc, opts, initial); err != nil {
				return err
			}

			tokens, err := bubble.Run(doc, opts,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()),
				tea.WithContext(cmd.Context()),
			)
			if err != nil {
				return err
			}

			out, err := submission.Encode(format, map[string]any{opts.Path: tokens})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.Path, "path", "labels", "Key the tokens are printed under")
	flags.BoolVar(&opts.IsKV, "kv", false, "Require key:value tokens")
	flags.StringVar(&opts.Label, "label", "Labels", "Label shown above the input")
	flags.StringVar(&opts.Placeholder, "placeholder", "", "Placeholder shown while the input is empty")
	flags.StringVar(&opts.HelperText, "helper", "", "Helper text shown under the input")
	flags.StringSliceVar(&initial, "initial", nil, "Tokens to start with")
	return cmd
}

// seedTokens commits the initial tokens through the editor so they obey the
// same rules as typed ones: duplicates are dropped and key:value mode rejects
// malformed entries.
func seedTokens(acc labelfield.Accessor, opts labelfield.Options, initial []string) error {
	editor := labelfield.New(acc, opts)
	for _, token := range initial {
		editor.Type(token)
		editor.Commit()
		if msg := editor.Error(); msg != "" {
			return fmt.Errorf("initial token %q: %s", token, msg)
		}
	}
	return nil
}
