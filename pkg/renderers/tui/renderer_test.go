package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chaosform/pkg/model"
	"github.com/goliatone/go-chaosform/pkg/render"
	"github.com/goliatone/go-chaosform/pkg/submission"
	"github.com/goliatone/go-chaosform/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	infoMessages []string
	messages     []string
	inputPos     int
	selectPos    int
	multiPos     int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func lossForm() model.Form {
	return model.Form{
		Kind:     "NetworkChaos",
		Category: "loss",
		Title:    "Network",
		Fields: model.Spec{
			{Name: "action", Type: model.FieldTypeFixed, Value: "loss"},
			{Name: "loss", Type: model.FieldTypeText, Label: "Loss", Value: "", Group: "loss"},
			{Name: "direction", Type: model.FieldTypeSelect, Items: []string{"", "from", "to", "both"}, Value: ""},
			{Name: "external_targets", Type: model.FieldTypeLabel, Label: "External Targets", Value: []string{}},
		},
	}
}

func TestRender_EncodesAssembledRequest(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"25", "example.com", "10.0.0.1 example.com", ""},
		selectIdx: []int{2},
	}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), lossForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got submission.Request
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := submission.Request{
		Kind:     "NetworkChaos",
		Category: "loss",
		Spec: map[string]any{
			"action":           "loss",
			"loss":             map[string]any{"loss": "25"},
			"direction":        "to",
			"external_targets": []any{"example.com", "10.0.0.1"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_LabelFieldKVErrorsAreShown(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{"hello", "env:prod", "<", "team:chaos", ""},
	}
	r := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	form := model.Form{
		Kind: "IoChaos",
		Fields: model.Spec{
			{Name: "attr", Type: model.FieldTypeLabel, IsKV: true, Label: "Attr", Value: []string{}},
		},
	}

	values, err := r.Collect(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]string{"team:chaos"}, values["attr"]); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	found := false
	for _, msg := range driver.infoMessages {
		if msg == "! Invalid key:value format" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected kv error to be shown, got %v", driver.infoMessages)
	}
}

func TestRender_LabelFieldReportsEachRejectedWord(t *testing.T) {
	driver := &stubDriver{inputs: []string{"hello env:prod bad\tteam:chaos", ""}}
	r := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	form := model.Form{
		Kind: "IoChaos",
		Fields: model.Spec{
			{Name: "attr", Type: model.FieldTypeLabel, IsKV: true, Label: "Attr", Value: []string{}},
		},
	}

	values, err := r.Collect(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]string{"env:prod", "team:chaos"}, values["attr"]); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	shown := 0
	for _, msg := range driver.infoMessages {
		if msg == "! Invalid key:value format" {
			shown++
		}
	}
	if shown != 2 {
		t.Fatalf("expected two kv errors, got %v", driver.infoMessages)
	}
}

func TestRender_LabelFieldShowsPrefilledChips(t *testing.T) {
	driver := &stubDriver{inputs: []string{"!clear", "c", ""}}
	r := New(WithPromptDriver(driver))
	form := model.Form{
		Fields: model.Spec{
			{Name: "clock_ids", Type: model.FieldTypeLabel, Label: "Clock ids", Value: []string{}},
		},
	}

	values, err := r.Collect(context.Background(), form, render.RenderOptions{
		Values: map[string]any{"clock_ids": []string{"a", "b"}},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if driver.messages[0] != "Clock ids [a, b]" {
		t.Fatalf("unexpected first prompt %q", driver.messages[0])
	}
	if diff := cmp.Diff([]string{"c"}, values["clock_ids"]); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_NumberValidation(t *testing.T) {
	driver := &stubDriver{inputs: []string{"abc", "-1", "10"}}
	r := New(WithPromptDriver(driver))
	form := model.Form{
		Fields: model.Spec{
			{Name: "errno", Type: model.FieldTypeNumber, Label: "Errno", Value: 0, InputProps: map[string]any{"min": 0}},
		},
	}

	values, err := r.Collect(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["errno"] != 10 {
		t.Fatalf("expected errno 10, got %#v", values["errno"])
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected two validation messages, got %v", driver.infoMessages)
	}
}

func TestRender_ValidatorReprompts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "nginx"}}
	rule := validation.Object(
		validation.Prop("container_name", validation.String().IsRequired("The container name is required")),
	)
	r := New(
		WithPromptDriver(driver),
		WithOutputFormat(submission.FormatYAML),
		WithValidator(func(form model.Form, values map[string]any) validation.Result {
			return validation.Validate(rule, submission.Assemble(form, values))
		}, 2),
	)
	form := model.Form{
		Kind:     "PodChaos",
		Category: "container-kill",
		Fields: model.Spec{
			{Name: "action", Type: model.FieldTypeFixed, Value: "container-kill"},
			{Name: "container_name", Type: model.FieldTypeText, Value: ""},
		},
	}

	out, err := r.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "container_name: nginx") {
		t.Fatalf("expected yaml output with container name, got:\n%s", out)
	}
	if len(driver.infoMessages) == 0 || !strings.Contains(driver.infoMessages[0], "The container name is required") {
		t.Fatalf("expected validation feedback, got %v", driver.infoMessages)
	}
}

func TestRender_ValidatorGivesUp(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", ""}}
	rule := validation.Object(validation.Prop("time_offset", validation.String().IsRequired("The time offset is required")))
	r := New(WithPromptDriver(driver), WithValidator(func(_ model.Form, values map[string]any) validation.Result {
		return validation.Validate(rule, values)
	}, 2))
	form := model.Form{Fields: model.Spec{{Name: "time_offset", Type: model.FieldTypeText, Value: ""}}}

	if _, err := r.Render(context.Background(), form, render.RenderOptions{}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestRender_MultiSelectSkipsEmptyOption(t *testing.T) {
	driver := &stubDriver{multiIdx: [][]int{{0, 2}}}
	r := New(WithPromptDriver(driver))
	form := model.Form{
		Fields: model.Spec{
			{Name: "methods", Type: model.FieldTypeAutocomplete, Items: []string{"", "lookup", "forget", "getattr"}, Value: []string{}},
		},
	}
	values, err := r.Collect(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]string{"lookup", "getattr"}, values["methods"]); diff != "" {
		t.Fatalf("methods mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_PropagatesAbort(t *testing.T) {
	r := New(WithPromptDriver(&stubDriver{}))
	form := model.Form{Fields: model.Spec{{Name: "x", Type: model.FieldTypeText}}}
	if _, err := r.Render(context.Background(), form, render.RenderOptions{}); err == nil {
		t.Fatalf("expected driver error to propagate")
	}
}
