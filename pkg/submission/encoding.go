package submission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format selects a payload encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
	FormatPretty  Format = "pretty"
)

// ParseFormat resolves a format name. Empty input selects JSON.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	case "pretty", "text":
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("submission: unsupported format %q", raw)
	}
}

// ContentType reports the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMsgpack:
		return "application/msgpack"
	case FormatPretty:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Encode serializes v in the requested format.
func Encode(format Format, v any) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("submission: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("submission: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatMsgpack:
		data, err := msgpack.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("submission: encode msgpack: %w", err)
		}
		return data, nil
	case FormatPretty:
		values, err := toMap(v)
		if err != nil {
			return nil, err
		}
		var b strings.Builder
		writePretty(&b, "", values)
		return []byte(b.String()), nil
	case FormatJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("submission: encode json: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("submission: unsupported format %q", format)
	}
}

// Decode parses data into a Request. JSON is valid YAML, so FormatJSON and
// FormatYAML share the YAML decoder.
func Decode(format Format, data []byte) (Request, error) {
	req, err := decode(format, data)
	if err != nil {
		return Request{}, err
	}
	if strings.TrimSpace(req.Kind) == "" {
		return Request{}, ErrKindMissing
	}
	return req, nil
}

// DecodeFor parses data for a kind the caller already knows, such as one
// taken from a URL. A missing kind is filled in; a different one is
// rejected with ErrKindMismatch.
func DecodeFor(kind string, format Format, data []byte) (Request, error) {
	req, err := decode(format, data)
	if err != nil {
		return Request{}, err
	}
	switch strings.TrimSpace(req.Kind) {
	case "":
		req.Kind = kind
	case kind:
	default:
		return Request{}, fmt.Errorf("%w: body names %q, expected %q", ErrKindMismatch, req.Kind, kind)
	}
	return req, nil
}

// FormatFromContentType maps a MIME type to a Format. Unknown types select
// JSON.
func FormatFromContentType(contentType string) Format {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.IndexByte(mediaType, ';'); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML
	case "application/msgpack", "application/x-msgpack", "application/vnd.msgpack":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

func decode(format Format, data []byte) (Request, error) {
	var req Request
	switch format {
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &req); err != nil {
			return Request{}, fmt.Errorf("submission: decode msgpack: %w", err)
		}
	case FormatJSON, FormatYAML, "":
		if err := yaml.Unmarshal(data, &req); err != nil {
			return Request{}, fmt.Errorf("submission: decode: %w", err)
		}
	default:
		return Request{}, fmt.Errorf("submission: unsupported format %q", format)
	}
	if req.Spec == nil {
		req.Spec = make(map[string]any)
	}
	return req, nil
}

func toMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case Request:
		out := map[string]any{"kind": typed.Kind, "spec": typed.Spec}
		if typed.Category != "" {
			out["category"] = typed.Category
		}
		return out, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("submission: encode pretty: %w", err)
		}
		var out map[string]any
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("submission: encode pretty: %w", err)
		}
		return out, nil
	}
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writePretty(b, joinKey(prefix, k), typed[k])
		}
	case []any:
		if len(typed) == 0 {
			fmt.Fprintf(b, "%s: []\n", prefix)
			return
		}
		for i, item := range typed {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, i), item)
		}
	case []string:
		fmt.Fprintf(b, "%s: [%s]\n", prefix, strings.Join(typed, ", "))
	default:
		fmt.Fprintf(b, "%s: %v\n", prefix, typed)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
