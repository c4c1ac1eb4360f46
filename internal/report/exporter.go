// Package report serializes a recommendation into a self-contained offline
// document.
package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/masterclass-labs/architect-advisor/internal/domain"
)

// Exporter renders standalone HTML reports. The output must stay readable
// with no network access and without the portal running: styling is inlined
// and the diagram is embedded, never referenced.
type Exporter struct {
	tmpl *template.Template
}

// NewExporter parses the report template.
func NewExporter() *Exporter {
	return &Exporter{tmpl: template.Must(template.New("report").Parse(reportTemplate))}
}

type reportData struct {
	Result     *domain.RecommendationResult
	DiagramSVG template.HTML
	DiagramPNG string
	RawDiagram string
}

// Export produces the downloadable document. A nil diagram degrades to a
// text embedding of the raw definition rather than failing the export.
func (e *Exporter) Export(result *domain.RecommendationResult, diagram *domain.RenderedDiagram) (*domain.Document, error) {
	if result == nil {
		return nil, domain.ErrInvalidInput("no result to export")
	}
	if err := result.Validate(); err != nil {
		return nil, domain.ErrInvalidInput(err.Error())
	}

	data := reportData{Result: result}
	switch {
	case diagram != nil && len(diagram.PNG) > 0:
		data.DiagramPNG = base64.StdEncoding.EncodeToString(diagram.PNG)
	case diagram != nil && diagram.SVG != "":
		// The SVG comes from the rendering service, not from user input.
		data.DiagramSVG = template.HTML(diagram.SVG)
	default:
		data.RawDiagram = result.DiagramDefinition
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	return &domain.Document{
		Filename:    Filename(result.RecommendedService),
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}

var (
	unsafeFilename = regexp.MustCompile(`[^a-z0-9-]+`)
	dashRun        = regexp.MustCompile(`-{2,}`)
)

// Filename derives the download name deterministically from the recommended
// service name.
func Filename(service string) string {
	name := strings.ToLower(strings.TrimSpace(service))
	name = strings.Join(strings.Fields(name), "-")
	name = unsafeFilename.ReplaceAllString(name, "")
	name = dashRun.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "recommendation"
	}
	return name + ".html"
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Result.RecommendedService}} — Architecture Recommendation</title>
<style>
body { font-family: Georgia, serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #1a202c; }
h1 { border-bottom: 3px solid #f90; padding-bottom: .3rem; }
h2 { color: #232f3e; margin-top: 2rem; }
ol li { margin-bottom: .8rem; }
.phase { font-weight: bold; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
ul.alternatives li { margin-bottom: .3rem; }
figure { margin: 1.5rem 0; text-align: center; }
</style>
</head>
<body>
<h1>{{.Result.RecommendedService}}</h1>
<h2>Justification</h2>
<p>{{.Result.Justification}}</p>
<h2>Implementation Plan</h2>
<ol>
{{range .Result.ImplementationSteps}}<li><span class="phase">{{.Phase}}</span> — {{.Details}}</li>
{{end}}</ol>
{{if .Result.Alternatives}}<h2>Alternatives Considered</h2>
<ul class="alternatives">
{{range .Result.Alternatives}}<li>{{.}}</li>
{{end}}</ul>
{{end}}<h2>Architecture Diagram</h2>
{{if .DiagramPNG}}<figure><img alt="architecture diagram" src="data:image/png;base64,{{.DiagramPNG}}"></figure>
{{else if .DiagramSVG}}<figure>{{.DiagramSVG}}</figure>
{{else}}<pre>{{.RawDiagram}}</pre>
{{end}}</body>
</html>
`
