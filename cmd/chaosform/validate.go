package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chaosform/pkg/submission"
)

var errInvalidSubmission = errors.New("validation failed")

func newValidateCommand(a *app) *cobra.Command {
	var (
		file   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "validate KIND [CATEGORY] -f FILE",
		Short: "Validate an experiment submission against its kind and category",
		Long: `Reads a submission ({kind, category, spec}) from FILE, or stdin when FILE
is "-", and checks it against the structural rule registered for the kind
and category. The category defaults to the submission's category or action.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, category, err := kindAndCategory(args)
			if err != nil {
				return err
			}
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			enc, err := inputFormat(format, file)
			if err != nil {
				return err
			}
			req, err := submission.DecodeFor(string(kind), enc, data)
			if err != nil {
				return err
			}
			if category == "" {
				category = req.CategoryOf()
			}
			form, err := a.registry.Form(kind, category)
			if err != nil {
				return err
			}

			result := a.registry.Validate(kind, form.Category, req.Spec)
			out := cmd.OutOrStdout()
			if result.Valid {
				fmt.Fprintf(out, "%s is valid\n", describe(string(kind), form.Category))
				return nil
			}

			rows := make([][]string, 0, len(result.Issues))
			for _, issue := range result.Issues {
				rows = append(rows, []string{issue.Field, issue.Message})
			}
			fmt.Fprintf(out, "%s has %d issue(s):\n", describe(string(kind), form.Category), len(result.Issues))
			fmt.Fprint(out, table([]string{"FIELD", "MESSAGE"}, rows))
			a.logger.Debug("submission rejected", "kind", kind, "category", form.Category, "issues", len(result.Issues))
			return errInvalidSubmission
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Submission file, or - for stdin")
	cmd.Flags().StringVar(&format, "format", "", "Input encoding; defaults to the file extension")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func inputFormat(explicit, path string) (submission.Format, error) {
	if strings.TrimSpace(explicit) != "" {
		return submission.ParseFormat(explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return submission.FormatYAML, nil
	case ".msgpack", ".mp":
		return submission.FormatMsgpack, nil
	default:
		return submission.FormatJSON, nil
	}
}

func describe(kind, category string) string {
	if category == "" {
		return kind
	}
	return kind + "/" + category
}
