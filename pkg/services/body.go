package services

import (
	"html"
	"html/template"
	"strings"
)

type BodyNodeKind string

const (
	NodeHeading    BodyNodeKind = "heading"
	NodeSubheading BodyNodeKind = "subheading"
	NodeText       BodyNodeKind = "text"
	NodeStrong     BodyNodeKind = "strong"
	NodeRow        BodyNodeKind = "row"
	NodeCell       BodyNodeKind = "cell"
	NodeBreak      BodyNodeKind = "break"
)

// BodyNode is one element of a parsed article body. Text is set on text and
// strong nodes; the other kinds carry Children.
type BodyNode struct {
	Kind     BodyNodeKind `json:"kind"`
	Text     string       `json:"text,omitempty"`
	Children []BodyNode   `json:"children,omitempty"`
}

// ParseBody reads the article body markup in a single pass.
//
// Lines starting with "## " and "### " are headings and subheadings. A line
// wrapped in pipes is a table row; "|---|" separator rows are dropped. Any
// other line is text. Inside all of these, **text** is emphasized and a
// |text| span within a line becomes a table cell. Line breaks are kept
// between consecutive non-heading lines.
func ParseBody(body string) []BodyNode {
	var nodes []BodyNode
	inline := false

	for _, line := range strings.Split(normalizeLineEndings(body), "\n") {
		switch {
		case strings.HasPrefix(line, "### "):
			nodes = append(nodes, BodyNode{Kind: NodeSubheading, Children: parseInline(line[4:])})
			inline = false
		case strings.HasPrefix(line, "## "):
			nodes = append(nodes, BodyNode{Kind: NodeHeading, Children: parseInline(line[3:])})
			inline = false
		case line == "":
			if inline {
				nodes = append(nodes, BodyNode{Kind: NodeBreak})
			}
		default:
			cells, isRow := tableCells(line)
			if isRow && isSeparatorRow(cells) {
				continue
			}
			if inline {
				nodes = append(nodes, BodyNode{Kind: NodeBreak})
			}
			if isRow {
				row := BodyNode{Kind: NodeRow}
				for _, cell := range cells {
					row.Children = append(row.Children, BodyNode{Kind: NodeCell, Children: parseInline(cell)})
				}
				nodes = append(nodes, row)
			} else {
				nodes = append(nodes, parseInline(line)...)
			}
			inline = true
		}
	}
	return nodes
}

// RenderBody parses body and renders it to HTML. All text is escaped.
func RenderBody(body string) template.HTML {
	var b strings.Builder
	writeNodes(&b, ParseBody(body))
	return template.HTML(b.String())
}

// parseInline splits s into text, **strong** spans and |cell| spans. An
// unmatched or empty marker stays literal.
func parseInline(s string) []BodyNode {
	var nodes []BodyNode
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, BodyNode{Kind: NodeText, Text: text.String()})
			text.Reset()
		}
	}

	for s != "" {
		switch {
		case strings.HasPrefix(s, "**"):
			if end := strings.Index(s[2:], "**"); end > 0 {
				flush()
				nodes = append(nodes, BodyNode{Kind: NodeStrong, Text: s[2 : 2+end]})
				s = s[2+end+2:]
				continue
			}
		case s[0] == '|':
			if end := strings.IndexByte(s[1:], '|'); end > 0 {
				flush()
				nodes = append(nodes, BodyNode{Kind: NodeCell, Children: parseInline(s[1 : 1+end])})
				s = s[1+end+1:]
				continue
			}
		}
		text.WriteByte(s[0])
		s = s[1:]
	}
	flush()
	return nodes
}

func tableCells(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 || trimmed[0] != '|' || trimmed[len(trimmed)-1] != '|' {
		return nil, false
	}
	cells := strings.Split(trimmed[1:len(trimmed)-1], "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells, true
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if c == "" || strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

func writeNodes(b *strings.Builder, nodes []BodyNode) {
	for _, n := range nodes {
		switch n.Kind {
		case NodeHeading:
			b.WriteString(`<h2 class="article-heading">`)
			writeNodes(b, n.Children)
			b.WriteString("</h2>")
		case NodeSubheading:
			b.WriteString(`<h3 class="article-subheading">`)
			writeNodes(b, n.Children)
			b.WriteString("</h3>")
		case NodeStrong:
			b.WriteString("<strong>")
			b.WriteString(html.EscapeString(n.Text))
			b.WriteString("</strong>")
		case NodeRow:
			b.WriteString(`<span class="table-row">`)
			writeNodes(b, n.Children)
			b.WriteString("</span>")
		case NodeCell:
			b.WriteString(`<span class="table-cell">`)
			writeNodes(b, n.Children)
			b.WriteString("</span>")
		case NodeBreak:
			b.WriteString("<br>")
		default:
			b.WriteString(html.EscapeString(n.Text))
		}
	}
}
