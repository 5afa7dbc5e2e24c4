package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chaosform/pkg/labelfield"
)

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGoldenJSON decodes a JSON golden file into out.
func MustReadGoldenJSON(t *testing.T, path string, out any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// TokenStore is an in-memory labelfield.Accessor that counts writes.
type TokenStore struct {
	Values map[string][]string
	Writes int
}

var _ labelfield.Accessor = (*TokenStore)(nil)

// NewTokenStore seeds a store with a single path.
func NewTokenStore(path string, tokens ...string) *TokenStore {
	store := &TokenStore{Values: map[string][]string{}}
	if path != "" {
		store.Values[path] = append([]string{}, tokens...)
	}
	return store
}

// Tokens implements labelfield.Accessor.
func (s *TokenStore) Tokens(path string) []string {
	return append([]string{}, s.Values[path]...)
}

// SetTokens implements labelfield.Accessor.
func (s *TokenStore) SetTokens(path string, tokens []string) {
	s.Writes++
	s.Values[path] = append([]string{}, tokens...)
}
