package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Rule checks a value and reports the issues found. segments locate the
// value inside the document being validated.
type Rule interface {
	Check(value any, segments []string) []Issue
	Schema() *openapi3.Schema
	Required() bool
}

// StringRule accepts string values.
type StringRule struct {
	required    bool
	requiredMsg string
}

// String starts a string rule.
func String() *StringRule {
	return &StringRule{}
}

// IsRequired marks the value as mandatory. Empty strings fail the check.
func (r *StringRule) IsRequired(message string) *StringRule {
	r.required = true
	r.requiredMsg = message
	return r
}

// Required implements Rule.
func (r *StringRule) Required() bool { return r.required }

// Check implements Rule.
func (r *StringRule) Check(value any, segments []string) []Issue {
	if value == nil {
		return r.missing(segments)
	}
	s, ok := coerceString(value)
	if !ok {
		return []Issue{newIssue(segments, fmt.Sprintf("%s must be a `string` type", fieldName(segments)))}
	}
	if s == "" {
		return r.missing(segments)
	}
	return nil
}

// coerceString accepts scalars the way a form input would submit them, so
// numbers and booleans pass as their text form.
func coerceString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	}
	if n, ok := toFloat(value); ok {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

func (r *StringRule) missing(segments []string) []Issue {
	if !r.required {
		return nil
	}
	return []Issue{newIssue(segments, requiredMessage(r.requiredMsg, segments))}
}

// Schema implements Rule.
func (r *StringRule) Schema() *openapi3.Schema {
	schema := openapi3.NewStringSchema()
	if r.required {
		schema.WithMinLength(1)
		withMessage(schema, r.requiredMsg)
	}
	return schema
}

// NumberRule accepts numeric values, including numeric strings.
type NumberRule struct {
	required    bool
	requiredMsg string
	hasMin      bool
	min         float64
	minMsg      string
}

// Number starts a number rule.
func Number() *NumberRule {
	return &NumberRule{}
}

// IsRequired marks the value as mandatory.
func (r *NumberRule) IsRequired(message string) *NumberRule {
	r.required = true
	r.requiredMsg = message
	return r
}

// Min sets an inclusive lower bound. An empty message selects the default.
func (r *NumberRule) Min(min float64, message string) *NumberRule {
	r.hasMin = true
	r.min = min
	r.minMsg = message
	return r
}

// Required implements Rule.
func (r *NumberRule) Required() bool { return r.required }

// Check implements Rule.
func (r *NumberRule) Check(value any, segments []string) []Issue {
	if value == nil {
		if r.required {
			return []Issue{newIssue(segments, requiredMessage(r.requiredMsg, segments))}
		}
		return nil
	}
	n, ok := toFloat(value)
	if !ok {
		return []Issue{newIssue(segments, fmt.Sprintf("%s must be a `number` type", fieldName(segments)))}
	}
	if r.hasMin && n < r.min {
		msg := r.minMsg
		if msg == "" {
			msg = fmt.Sprintf("%s must be greater than or equal to %s", fieldName(segments), formatFloat(r.min))
		}
		return []Issue{newIssue(segments, msg)}
	}
	return nil
}

// Schema implements Rule.
func (r *NumberRule) Schema() *openapi3.Schema {
	schema := openapi3.NewFloat64Schema()
	if r.hasMin {
		schema.WithMin(r.min)
	}
	if r.required {
		withMessage(schema, r.requiredMsg)
	}
	return schema
}

// ArrayRule accepts slices whose items satisfy an optional item rule.
type ArrayRule struct {
	of          Rule
	required    bool
	requiredMsg string
}

// Array starts an array rule. of may be nil to accept any items.
func Array(of Rule) *ArrayRule {
	return &ArrayRule{of: of}
}

// IsRequired marks the array as mandatory. Missing and empty arrays fail.
func (r *ArrayRule) IsRequired(message string) *ArrayRule {
	r.required = true
	r.requiredMsg = message
	return r
}

// Required implements Rule.
func (r *ArrayRule) Required() bool { return r.required }

// Check implements Rule.
func (r *ArrayRule) Check(value any, segments []string) []Issue {
	items, ok := toSlice(value)
	if value != nil && !ok {
		return []Issue{newIssue(segments, fmt.Sprintf("%s must be a `array` type", fieldName(segments)))}
	}
	if len(items) == 0 {
		if r.required {
			return []Issue{newIssue(segments, requiredMessage(r.requiredMsg, segments))}
		}
		return nil
	}
	if r.of == nil {
		return nil
	}
	var issues []Issue
	for idx, item := range items {
		issues = append(issues, r.of.Check(item, appendSegment(segments, strconv.Itoa(idx)))...)
	}
	return issues
}

// Schema implements Rule.
func (r *ArrayRule) Schema() *openapi3.Schema {
	schema := openapi3.NewArraySchema()
	if r.of != nil {
		schema.WithItems(r.of.Schema())
	}
	if r.required {
		schema.WithMinItems(1)
		withMessage(schema, r.requiredMsg)
	}
	return schema
}

// Property binds a rule to an object key.
type Property struct {
	Name string
	Rule Rule
}

// Prop is shorthand for constructing a Property.
func Prop(name string, rule Rule) Property {
	return Property{Name: name, Rule: rule}
}

// ObjectRule checks named properties of a map. Keys without a rule are
// ignored. A missing object is treated as empty so nested required
// properties still report.
type ObjectRule struct {
	props []Property
}

// Object starts an object rule over the given properties.
func Object(props ...Property) *ObjectRule {
	return &ObjectRule{props: props}
}

// Required implements Rule.
func (r *ObjectRule) Required() bool {
	for _, prop := range r.props {
		if prop.Rule != nil && prop.Rule.Required() {
			return true
		}
	}
	return false
}

// Properties returns the property names in declaration order.
func (r *ObjectRule) Properties() []string {
	out := make([]string, 0, len(r.props))
	for _, prop := range r.props {
		out = append(out, prop.Name)
	}
	return out
}

// Check implements Rule.
func (r *ObjectRule) Check(value any, segments []string) []Issue {
	var obj map[string]any
	if value != nil {
		var ok bool
		obj, ok = toMap(value)
		if !ok {
			return []Issue{newIssue(segments, fmt.Sprintf("%s must be a `object` type", fieldName(segments)))}
		}
	}
	var issues []Issue
	for _, prop := range r.props {
		if prop.Rule == nil {
			continue
		}
		issues = append(issues, prop.Rule.Check(obj[prop.Name], appendSegment(segments, prop.Name))...)
	}
	return issues
}

// Schema implements Rule.
func (r *ObjectRule) Schema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, prop := range r.props {
		if prop.Rule == nil {
			continue
		}
		schema.WithProperty(prop.Name, prop.Rule.Schema())
		if prop.Rule.Required() {
			required = append(required, prop.Name)
		}
	}
	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

func requiredMessage(message string, segments []string) string {
	if strings.TrimSpace(message) != "" {
		return message
	}
	return fmt.Sprintf("%s is a required field", fieldName(segments))
}

func withMessage(schema *openapi3.Schema, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	if schema.Extensions == nil {
		schema.Extensions = make(map[string]any)
	}
	schema.Extensions["x-required-message"] = message
}

func appendSegment(segments []string, segment string) []string {
	out := make([]string, len(segments), len(segments)+1)
	copy(out, segments)
	return append(out, segment)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, !math.IsNaN(v)
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func toMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}
