package expand

import (
	"fmt"
	"strings"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/sandbox"
)

// replPrompt prefixes the first line of each expression; continuation lines
// get blank padding of equal width.
const replPrompt = "repl> "

// runREPL evaluates a "@repl" block expression by expression and renders a
// transcript: prompted source, captured output, and the printed value
// (suppressed when the source ends with a statement terminator). A failing
// expression renders its error inline and evaluation continues with the
// next one, unlike the other evaluators.
func runREPL(d *Document, p *doctree.Page, b *doctree.Block) error {
	name, err := parseEvalTag(replTagPattern, b.Info)
	if err != nil {
		return err
	}
	ctx := d.Sandboxes.GetOrCreate(p, name)

	var sections []string
	for _, e := range sandbox.SplitExpressions(b.Literal) {
		res := ctx.Eval(e)
		sections = append(sections, renderTranscript(res))
		if res.Err != nil {
			d.Warn(p, b, res.Source, fmt.Sprintf("@repl expression failed: %v", res.Err))
		}
	}

	p.Mapping[b] = &doctree.REPL{Transcript: strings.Join(sections, "\n\n")}
	return nil
}

func renderTranscript(res sandbox.Result) string {
	var out strings.Builder
	pad := strings.Repeat(" ", len(replPrompt))
	for i, line := range strings.Split(res.Source, "\n") {
		if i == 0 {
			out.WriteString(replPrompt)
		} else {
			out.WriteString(pad)
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}

	if res.Output != "" {
		out.WriteString(res.Output)
		if !strings.HasSuffix(res.Output, "\n") {
			out.WriteByte('\n')
		}
	}

	switch {
	case res.Err != nil:
		out.WriteString("ERROR: " + res.Err.Error() + "\n")
	case !res.Suppressed:
		if repr := formatValue(res.Value); repr != "" {
			out.WriteString(repr + "\n")
		}
	}
	return strings.TrimRight(out.String(), "\n")
}
