package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chaosform/internal/config"
	"github.com/goliatone/go-chaosform/internal/logging"
	"github.com/goliatone/go-chaosform/pkg/experiment"
	"github.com/goliatone/go-chaosform/pkg/render"
	"github.com/goliatone/go-chaosform/pkg/renderers/tui"
	"github.com/goliatone/go-chaosform/pkg/submission"
)

// app carries what every subcommand needs once flags and config are merged.
type app struct {
	configPath string
	logLevel   string
	locale     string
	output     string

	cfg      config.Config
	logger   *slog.Logger
	registry *experiment.Registry
	// driver overrides the survey prompts of the new command.
	driver tui.PromptDriver
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(&app{registry: experiment.Default()})
}

func newRootCommandWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "chaosform",
		Short: "Build, inspect and validate chaos experiment forms",
		Long: `chaosform exposes the chaos experiment schema registry: list experiment
kinds, fill in an experiment interactively, validate submissions and serve
the registry over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath, "Path to the chaosform config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&a.locale, "locale", "", "Locale used for kind and field names")
	flags.StringVarP(&a.output, "output", "o", "", "Submission encoding: json, yaml, msgpack or pretty")

	root.AddCommand(
		newKindsCommand(a),
		newShowCommand(a),
		newValidateCommand(a),
		newSchemaCommand(a),
		newNewCommand(a),
		newLabelsCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("locale") {
		cfg.Locale = a.locale
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
	a.logger.Debug("configuration loaded", "path", a.configPath, "locale", cfg.Locale, "output", cfg.Output)
	return nil
}

func (a *app) format() (submission.Format, error) {
	format, err := submission.ParseFormat(a.cfg.Output)
	if err != nil {
		return "", fmt.Errorf("--output: %w", err)
	}
	return format, nil
}

func (a *app) translator() render.Translator {
	if len(a.cfg.Translations) == 0 {
		return nil
	}
	return render.MapTranslator(a.cfg.Translations)
}

func (a *app) renderOptions() render.RenderOptions {
	return render.RenderOptions{
		Locale:     a.cfg.Locale,
		Translator: a.translator(),
	}
}

// kindAndCategory parses the KIND [CATEGORY] positional arguments.
func kindAndCategory(args []string) (experiment.Kind, string, error) {
	kind, err := experiment.ParseKind(args[0])
	if err != nil {
		return "", "", err
	}
	category := ""
	if len(args) > 1 {
		category = args[1]
	}
	return kind, category, nil
}
