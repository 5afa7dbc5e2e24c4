package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig describes a free-text prompt. Label fields use one Input per
// typed line.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// SelectConfig describes a single or multi choice prompt. Default is an
// index into Options, -1 for none; Checked lists the indexes pre-selected in
// a multi choice.
type SelectConfig struct {
	Message  string
	Help     string
	Options  []string
	Default  int
	Checked  []int
	PageSize int
}

// PromptDriver asks the questions of a session. Select answers are indexes
// into SelectConfig.Options.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	stdio survey.AskOpt
	out   io.Writer
}

// NewSurveyDriver returns the survey backed driver used by default. Prompts
// are drawn on stderr so stdout only carries the encoded submission.
func NewSurveyDriver() PromptDriver {
	return &surveyDriver{
		stdio: survey.WithStdio(os.Stdin, os.Stderr, os.Stderr),
		out:   os.Stderr,
	}
}

func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, answer any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(prompt, answer, d.stdio)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var line string
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &line)
	return line, err
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if cfg.Default >= 0 && cfg.Default < len(cfg.Options) {
		prompt.Default = cfg.Default
	}
	idx := -1
	if err := d.ask(ctx, prompt, &idx); err != nil {
		return -1, err
	}
	return idx, nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	prompt := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if len(cfg.Checked) > 0 {
		checked := make([]int, 0, len(cfg.Checked))
		for _, idx := range cfg.Checked {
			if idx >= 0 && idx < len(cfg.Options) {
				checked = append(checked, idx)
			}
		}
		prompt.Default = checked
	}
	var picked []int
	if err := d.ask(ctx, prompt, &picked); err != nil {
		return nil, err
	}
	return picked, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
