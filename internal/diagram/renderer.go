// Package diagram converts model-produced Mermaid text into displayable
// diagrams.
//
// Rendering is best-effort. The definition comes from a generative model and
// is not guaranteed syntactically valid, so every failure keeps the raw
// definition retrievable for a plain-text fallback, and a re-render is just a
// second explicit call with the same definition.
package diagram

import (
	"context"
	"strings"

	"github.com/masterclass-labs/architect-advisor/internal/api/kroki"
	"github.com/masterclass-labs/architect-advisor/internal/domain"
)

// KrokiRenderer renders definitions through a Kroki-compatible service.
type KrokiRenderer struct {
	client *kroki.Client
}

var _ domain.DiagramRenderer = (*KrokiRenderer)(nil)

// NewKrokiRenderer wraps the given client.
func NewKrokiRenderer(client *kroki.Client) *KrokiRenderer {
	return &KrokiRenderer{client: client}
}

// Render normalizes the definition and renders it to SVG. On failure the
// returned error carries the normalized definition.
func (r *KrokiRenderer) Render(ctx context.Context, definition string) (*domain.RenderedDiagram, error) {
	def, err := Normalize(definition)
	if err != nil {
		return nil, err
	}
	svg, err := r.client.RenderSVG(ctx, def)
	if err != nil {
		return nil, domain.ErrRender("diagram failed to render").WithCause(err).WithDefinition(def)
	}
	return &domain.RenderedDiagram{SVG: svg}, nil
}

// RenderPNG produces a rasterized snapshot for report embedding. Callers are
// expected to degrade to a text-only embedding when this fails.
func (r *KrokiRenderer) RenderPNG(ctx context.Context, definition string) ([]byte, error) {
	def, err := Normalize(definition)
	if err != nil {
		return nil, err
	}
	png, err := r.client.RenderPNG(ctx, def)
	if err != nil {
		return nil, domain.ErrRender("diagram failed to rasterize").WithCause(err).WithDefinition(def)
	}
	return png, nil
}

// Normalize strips the Markdown fencing and language tags models wrap
// diagrams in, and trims blank lines. An empty definition after stripping is
// a render error.
func Normalize(definition string) (string, error) {
	def := strings.TrimSpace(definition)
	def = strings.TrimPrefix(def, "```mermaid")
	def = strings.TrimPrefix(def, "```")
	def = strings.TrimSuffix(strings.TrimSpace(def), "```")
	def = strings.TrimSpace(def)
	if strings.HasPrefix(def, "mermaid\n") {
		def = strings.TrimSpace(strings.TrimPrefix(def, "mermaid\n"))
	}
	if def == "" {
		return "", domain.ErrRender("diagram definition is empty").WithDefinition(definition)
	}

	lines := strings.Split(def, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return strings.Join(out, "\n"), nil
}
