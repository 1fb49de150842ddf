package render

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/form"
)

// Renderer converts a form snapshot into a byte representation (HTML, plain
// text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot form.Snapshot, options RenderOptions) ([]byte, error)
}
