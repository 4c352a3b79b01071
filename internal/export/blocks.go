package export

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockBullet
	BlockHeading
)

// Block is one renderable unit of section content.
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
}

var markdown = goldmark.New()

// ParseBlocks splits section content into headings, list items and
// paragraphs. Soft line breaks inside a paragraph become spaces.
func ParseBlocks(content string) []Block {
	src := []byte(content)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var out []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if t := lineText(node, src); t != "" {
				out = append(out, Block{Kind: BlockHeading, Level: node.Level, Text: t})
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock, *ast.FencedCodeBlock, *ast.CodeBlock:
			t := lineText(node, src)
			if t == "" {
				return ast.WalkSkipChildren, nil
			}
			kind := BlockParagraph
			if inListItem(node) {
				kind = BlockBullet
			}
			out = append(out, Block{Kind: kind, Text: t})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

func lineText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if s := strings.TrimSpace(string(seg.Value(src))); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func inListItem(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.ListItem); ok {
			return true
		}
	}
	return false
}
