// Package loader parses markdown source files into the block sequences the
// expansion pipeline consumes. Parsing is delegated to goldmark; the loader
// flattens top-level AST nodes into doctree blocks (headers, fenced code
// blocks, opaque passthrough segments).
package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/errs"
)

// idLinkPattern matches an explicit header identifier link target.
var idLinkPattern = regexp.MustCompile(`^@id\s+(\S+)$`)

// Parse converts markdown source into a page. source is the path the data
// came from, dest the destination path used for anchor locations.
func Parse(source, dest string, data []byte) *doctree.Page {
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(data))

	var blocks []*doctree.Block
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, convertBlock(child, data))
	}
	return doctree.NewPage(source, dest, blocks)
}

// LoadFile reads and parses one markdown file. relPath becomes both the page
// source (relative to baseDir) and its destination path.
func LoadFile(baseDir, relPath string) (*doctree.Page, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, relPath))
	if err != nil {
		return nil, errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "read page")
	}
	return Parse(relPath, relPath, data), nil
}

func convertBlock(n gmast.Node, data []byte) *doctree.Block {
	switch node := n.(type) {
	case *gmast.Heading:
		b := &doctree.Block{
			Kind:  doctree.BlockHeader,
			Level: node.Level,
			Text:  inlineText(node, data),
			Line:  lineOf(data, blockStart(node)),
		}
		if name, ok := headerIDTarget(node, data); ok {
			b.IDTarget = name
		}
		return b

	case *gmast.FencedCodeBlock:
		info := ""
		if node.Info != nil {
			info = strings.TrimSpace(string(node.Info.Segment.Value(data)))
		}
		return &doctree.Block{
			Kind:    doctree.BlockCode,
			Info:    info,
			Literal: blockLines(node, data),
			Line:    lineOf(data, blockStart(node)),
		}

	default:
		return &doctree.Block{
			Kind:    doctree.BlockOther,
			Literal: rawSegment(n, data),
			Line:    lineOf(data, blockStart(n)),
		}
	}
}

// headerIDTarget detects a single embedded link whose target is an
// "@id <name>" marker. The link text stays part of the header's plain text,
// which unwraps the link for display.
func headerIDTarget(h *gmast.Heading, data []byte) (string, bool) {
	var links []*gmast.Link
	_ = gmast.Walk(h, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if l, ok := n.(*gmast.Link); ok {
				links = append(links, l)
			}
		}
		return gmast.WalkContinue, nil
	})
	if len(links) != 1 {
		return "", false
	}
	m := idLinkPattern.FindStringSubmatch(string(links[0].Destination))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// inlineText renders a node's inline content as plain text.
func inlineText(n gmast.Node, data []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(data))
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// blockLines concatenates the line segments of a leaf block (code body).
func blockLines(n gmast.Node, data []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(data))
	}
	return buf.String()
}

// rawSegment recovers the raw source text a block spans, extended to full
// lines so list markers and quote prefixes survive.
func rawSegment(n gmast.Node, data []byte) string {
	start, stop := -1, -1
	_ = gmast.Walk(n, func(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering || node.Type() != gmast.TypeBlock {
			return gmast.WalkContinue, nil
		}
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		return gmast.WalkContinue, nil
	})
	if start < 0 {
		return ""
	}
	for start > 0 && data[start-1] != '\n' {
		start--
	}
	for stop < len(data) && data[stop] != '\n' {
		stop++
	}
	return strings.TrimRight(string(data[start:stop]), "\n")
}

// blockStart returns the byte offset a block begins at, or 0 when the block
// carries no line segments.
func blockStart(n gmast.Node) int {
	start := -1
	_ = gmast.Walk(n, func(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering || node.Type() != gmast.TypeBlock {
			return gmast.WalkContinue, nil
		}
		lines := node.Lines()
		if lines.Len() > 0 {
			seg := lines.At(0)
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
		}
		return gmast.WalkContinue, nil
	})
	if start < 0 {
		return 0
	}
	return start
}

func lineOf(data []byte, offset int) int {
	if offset > len(data) {
		offset = len(data)
	}
	return 1 + bytes.Count(data[:offset], []byte{'\n'})
}
