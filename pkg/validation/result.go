package validation

import "strings"

// Issue represents a validation error with location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of validating a submission.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Validate runs rule against value. A nil rule accepts everything.
func Validate(rule Rule, value any) Result {
	if rule == nil {
		return Result{Valid: true}
	}
	issues := rule.Check(value, nil)
	return Result{Valid: len(issues) == 0, Issues: issues}
}

// Messages groups issue messages by dotted field path, the shape the render
// package expects for error payloads.
func (r Result) Messages() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

func newIssue(segments []string, message string) Issue {
	return Issue{
		Path:    pointerFromSegments(segments),
		Field:   strings.Join(segments, "."),
		Message: message,
	}
}

func pointerFromSegments(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		b.WriteByte('/')
		b.WriteString(segment)
	}
	return b.String()
}

func fieldName(segments []string) string {
	if len(segments) == 0 {
		return "this"
	}
	return strings.Join(segments, ".")
}
