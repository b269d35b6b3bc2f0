// Package render turns expanded pages back into GitHub-flavored markdown.
// It matches exhaustively over the closed node union so no node kind is
// silently dropped.
package render

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/nao1215/markdown"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/sandbox"
)

// Page renders one expanded page to w, block by block in document order.
func Page(w io.Writer, p *doctree.Page) error {
	md := markdown.NewMarkdown(w)
	for _, b := range p.Blocks {
		if err := renderNode(md, b, p.Replacement(b)); err != nil {
			return err
		}
	}
	return md.Build()
}

func renderNode(md *markdown.Markdown, b *doctree.Block, n doctree.Node) error {
	switch node := n.(type) {
	case *doctree.Passthrough:
		renderPassthrough(md, node.Block)

	case *doctree.HeaderAnchor:
		md.PlainText(fmt.Sprintf("<a id=%q></a>", node.Anchor.ID()))
		heading(md, node.Level, node.Text)
		md.PlainText("")

	case *doctree.Code:
		md.CodeBlocks(markdown.SyntaxHighlight(node.Lang), node.Source)
		md.PlainText("")

	case *doctree.DocsGroup:
		for _, docs := range node.Nodes {
			renderDocs(md, docs)
		}

	case *doctree.Docs:
		renderDocs(md, node)

	case *doctree.EvalResult:
		renderValue(md, node.Value)

	case *doctree.Example:
		if node.Source != "" {
			md.CodeBlocks(markdown.SyntaxHighlight(""), node.Source)
			md.PlainText("")
		}
		if node.Image != nil {
			renderImage(md, node.Image)
		} else if node.Output != "" {
			md.CodeBlocks(markdown.SyntaxHighlight(""), node.Output)
			md.PlainText("")
		}

	case *doctree.REPL:
		md.CodeBlocks(markdown.SyntaxHighlight(""), node.Transcript)
		md.PlainText("")

	case *doctree.Empty:
		// Fully silent.

	case *doctree.Index:
		items := make([]string, 0, len(node.Entries))
		for _, e := range node.Entries {
			items = append(items, fmt.Sprintf("[`%s`](%s#%s)", e.Identity.Binding.FullName(), e.Page, e.Anchor.ID()))
		}
		if len(items) > 0 {
			md.BulletList(items...)
			md.PlainText("")
		}

	case *doctree.Contents:
		renderContents(md, node)

	default:
		return fmt.Errorf("unhandled node kind %T for block at line %d", n, b.Line)
	}
	return nil
}

func renderPassthrough(md *markdown.Markdown, b *doctree.Block) {
	switch b.Kind {
	case doctree.BlockCode:
		md.CodeBlocks(markdown.SyntaxHighlight(b.Info), b.Literal)
		md.PlainText("")
	case doctree.BlockHeader:
		heading(md, b.Level, b.Text)
		md.PlainText("")
	default:
		md.PlainText(b.Literal)
		md.PlainText("")
	}
}

func renderDocs(md *markdown.Markdown, docs *doctree.Docs) {
	md.PlainText(fmt.Sprintf("<a id=%q></a>", docs.Anchor.ID()))
	title := "`" + docs.Identity.Binding.FullName() + "`"
	if docs.Identity.Signature != "" {
		title += " - `" + docs.Identity.Signature + "`"
	}
	md.H3(title)
	md.PlainText("")
	md.PlainText(docs.Content)
	if docs.Path != "" {
		md.PlainText("")
		md.PlainText(fmt.Sprintf("*source: %s*", docs.Path))
	}
	md.PlainText("")
}

func renderValue(md *markdown.Markdown, v any) {
	switch val := v.(type) {
	case nil:
	case sandbox.Image:
		renderImage(md, &doctree.InlineImage{MIME: val.MIME, Data: val.Data})
	case *sandbox.Image:
		if val != nil {
			renderImage(md, &doctree.InlineImage{MIME: val.MIME, Data: val.Data})
		}
	case string:
		md.PlainText(val)
		md.PlainText("")
	default:
		md.PlainText(fmt.Sprintf("%v", val))
		md.PlainText("")
	}
}

func renderImage(md *markdown.Markdown, img *doctree.InlineImage) {
	uri := fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data))
	md.PlainText(fmt.Sprintf("![](%s)", uri))
	md.PlainText("")
}

// renderContents emits a nested outline; indentation follows each entry's
// header level relative to the shallowest entry.
func renderContents(md *markdown.Markdown, node *doctree.Contents) {
	if len(node.Entries) == 0 {
		return
	}
	minLevel := node.Entries[0].Level
	for _, e := range node.Entries {
		if e.Level < minLevel {
			minLevel = e.Level
		}
	}
	for _, e := range node.Entries {
		indent := ""
		for i := minLevel; i < e.Level; i++ {
			indent += "  "
		}
		md.PlainText(fmt.Sprintf("%s- [%s](%s#%s)", indent, e.Text, e.Anchor.Page, e.Anchor.ID()))
	}
	md.PlainText("")
}

func heading(md *markdown.Markdown, level int, text string) {
	switch level {
	case 1:
		md.H1(text)
	case 2:
		md.H2(text)
	case 3:
		md.H3(text)
	case 4:
		md.H4(text)
	case 5:
		md.H5(text)
	default:
		md.H6(text)
	}
}
