package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Summary describes a comic's markdown at a glance.
type Summary struct {
	Title  string   // first level-1 heading, else the first heading
	Panels int      // images, one per comic panel
	Tables int      // GFM tables
	Words  int      // words of visible text
	Images []string // image destinations in document order
}

var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Inspect parses md with GitHub-flavoured extensions and summarises it.
func Inspect(md string) Summary {
	src := []byte(md)
	doc := gfm.Parser().Parse(text.NewReader(src))

	var s Summary
	titleLevel := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if titleLevel != 1 && (titleLevel == 0 || node.Level == 1) {
				if t := plainText(node, src); t != "" {
					s.Title = t
					titleLevel = node.Level
				}
			}
		case *ast.Image:
			s.Panels++
			s.Images = append(s.Images, string(node.Destination))
		case *east.Table:
			s.Tables++
		case *ast.Text:
			s.Words += len(strings.Fields(string(node.Segment.Value(src))))
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return s
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
