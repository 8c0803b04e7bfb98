// Package pdf renders generated markdown content to PDF. The markdown
// is parsed with goldmark and the block structure is laid out with
// fpdf; inline styling beyond headings is flattened to plain text.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"contentai/internal/models"
)

const (
	bodyFontSize = 11.0
	lineHeight   = 6.0
)

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13}

// Renderer converts markdown content into PDF bytes.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with a default goldmark parser.
func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Render lays out req.Content as an A4 document and returns the PDF
// bytes. The document title falls back to the content type when the
// markdown has no H1.
func (r *Renderer) Render(req models.ExportPDFRequest) ([]byte, error) {
	source := []byte(req.Content)
	doc := r.md.Parser().Parse(gtext.NewReader(source))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.documentTitle(doc, source, req.ContentType), true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		r.renderBlock(pdf, tr, node, source)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderBlock(pdf *fpdf.Fpdf, tr func(string) string, node ast.Node, source []byte) {
	switch n := node.(type) {
	case *ast.Heading:
		size, ok := headingSizes[n.Level]
		if !ok {
			size = bodyFontSize + 1
		}
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(0, lineHeight+2, tr(nodeText(n, source)), "", "L", false)
		pdf.Ln(2)
	case *ast.List:
		pdf.SetFont("Helvetica", "", bodyFontSize)
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			pdf.MultiCell(0, lineHeight, tr("  - "+nodeText(item, source)), "", "L", false)
		}
		pdf.Ln(2)
	case *ast.ThematicBreak:
		x, y := pdf.GetXY()
		w, _ := pdf.GetPageSize()
		pdf.Line(x, y, w-20, y)
		pdf.Ln(4)
	default:
		text := nodeText(node, source)
		if strings.TrimSpace(text) == "" {
			return
		}
		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.MultiCell(0, lineHeight, tr(text), "", "L", false)
		pdf.Ln(2)
	}
}

// documentTitle uses the first H1, falling back to a label derived from
// the content type.
func (r *Renderer) documentTitle(doc ast.Node, source []byte, contentType models.ContentType) string {
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if h, ok := node.(*ast.Heading); ok && h.Level == 1 {
			return nodeText(h, source)
		}
	}
	label := strings.ReplaceAll(string(contentType), "_", " ")
	if label == "" {
		label = "generated content"
	}
	return "Generated " + label
}

// nodeText flattens a node's inline content to plain text.
func nodeText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
