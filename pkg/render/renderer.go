package render

import (
	"context"

	"github.com/goliatone/go-chaosform/pkg/model"
)

// Renderer converts a resolved experiment form into a byte representation
// (HTML fragment, terminal transcript, encoded submission).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options RenderOptions) ([]byte, error)
}
