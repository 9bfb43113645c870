package ingest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// MarkdownStripper converts markdown to plain text by walking the goldmark
// AST. Formatting is dropped but block structure survives as newlines, so
// the Q&A marker patterns still see one marker per line.
type MarkdownStripper struct {
	parser goldmark.Markdown
}

// NewMarkdownStripper creates a stripper with table support.
func NewMarkdownStripper() *MarkdownStripper {
	return &MarkdownStripper{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Strip renders markdown content as plain text.
func (s *MarkdownStripper) Strip(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	doc := s.parser.Parser().Parse(text.NewReader(content))

	var out strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.List, *ast.ListItem:
			ensureNewline(&out)
			return ast.WalkContinue, nil

		case *ast.Text:
			out.Write(node.Segment.Value(content))
			if node.SoftLineBreak() || node.HardLineBreak() {
				out.WriteByte('\n')
			}
			return ast.WalkContinue, nil

		case *ast.String:
			out.Write(node.Value)
			return ast.WalkContinue, nil

		case *ast.CodeBlock:
			ensureNewline(&out)
			writeLines(&out, node, content)
			return ast.WalkContinue, nil

		case *ast.FencedCodeBlock:
			ensureNewline(&out)
			writeLines(&out, node, content)
			return ast.WalkContinue, nil
		}

		// Table extension nodes are only identifiable by kind name.
		kind := n.Kind().String()
		if strings.Contains(kind, "TableRow") || strings.Contains(kind, "TableHeader") {
			ensureNewline(&out)
			out.WriteString(tableRowText(n, content))
			out.WriteByte('\n')
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(out.String())
}

func ensureNewline(out *strings.Builder) {
	if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
		out.WriteByte('\n')
	}
}

func writeLines(out *strings.Builder, n ast.Node, content []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out.Write(seg.Value(content))
	}
}

// tableRowText joins the row's cell texts with pipe separators.
func tableRowText(row ast.Node, content []byte) string {
	var cells []string
	_ = ast.Walk(row, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if strings.Contains(n.Kind().String(), "TableCell") {
			cells = append(cells, nodeText(n, content))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(cells, " | ")
}

func nodeText(n ast.Node, content []byte) string {
	var out strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			out.Write(v.Segment.Value(content))
		case *ast.String:
			out.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(out.String())
}
