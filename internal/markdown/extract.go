// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is a fenced or indented code block.
type CodeBlock struct {
	// ID is "code-N" where N is the block's position in the document.
	ID       string
	Language string
	Code     string
}

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// CodeBlockID returns the id of the index-th code block.
func CodeBlockID(index int) string {
	return "code-" + strconv.Itoa(index)
}

// Extract returns the code blocks of source in document order.
func Extract(source string) []CodeBlock {
	src := []byte(source)
	doc := parser.Parse(text.NewReader(src))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var language string
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			language = string(node.Language(src))
		case *ast.CodeBlock:
		default:
			return ast.WalkContinue, nil
		}

		blocks = append(blocks, CodeBlock{
			ID:       CodeBlockID(len(blocks)),
			Language: language,
			Code:     strings.TrimRight(linesOf(n, src), "\n"),
		})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// Find returns the block with id, if present.
func Find(source, id string) (CodeBlock, bool) {
	for _, cb := range Extract(source) {
		if cb.ID == id {
			return cb, true
		}
	}
	return CodeBlock{}, false
}

func linesOf(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
