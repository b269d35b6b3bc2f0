package expand

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/june-6th/docexpand/internal/doctree"
	"github.com/june-6th/docexpand/internal/errs"
	"github.com/june-6th/docexpand/internal/sandbox"
)

// Directive tag grammars. A tag matching a stage's prefix but failing its
// full pattern is an authoring mistake no later stage can route around, so
// it aborts the build.
var (
	exampleTagPattern = regexp.MustCompile(`^@example(?:[ \t]+(\S+))?$`)
	replTagPattern    = regexp.MustCompile(`^@repl(?:[ \t]+(\S+))?$`)
	setupTagPattern   = regexp.MustCompile(`^@setup[ \t]+(\S+)$`)
)

// parseEvalTag extracts the optional (or for @setup, mandatory) context name
// from an evaluator directive tag.
func parseEvalTag(pattern *regexp.Regexp, tag string) (string, error) {
	m := pattern.FindStringSubmatch(tag)
	if m == nil {
		return "", errs.Fatal(errs.CategoryDirective, fmt.Sprintf("malformed directive tag %q", tag))
	}
	return m[1], nil
}

// hideMarker removes lines the author marked as hidden from displayed
// example source.
const hideMarker = "# hide"

// removeHideMarkers drops the marker text but keeps the code, so hidden
// lines still evaluate.
func removeHideMarkers(source string) string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasSuffix(trimmed, hideMarker) {
			lines[i] = strings.TrimRight(strings.TrimSuffix(trimmed, hideMarker), " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func stripHiddenLines(source string) string {
	lines := strings.Split(source, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasSuffix(strings.TrimRight(line, " \t"), hideMarker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}

// evalSequential evaluates the block's expressions in order, stopping at the
// first failure. It returns the results so far and whether all succeeded.
func evalSequential(ctx *sandbox.Context, source string) ([]sandbox.Result, bool) {
	var results []sandbox.Result
	for _, e := range sandbox.SplitExpressions(source) {
		res := ctx.Eval(e)
		results = append(results, res)
		if res.Err != nil {
			return results, false
		}
	}
	return results, true
}

// formatValue is the printed representation of an evaluation result value.
func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// asImage detects values exposing inline-image capability.
func asImage(v any) *doctree.InlineImage {
	if img, ok := v.(sandbox.Image); ok {
		return &doctree.InlineImage{MIME: img.MIME, Data: img.Data}
	}
	if img, ok := v.(*sandbox.Image); ok && img != nil {
		return &doctree.InlineImage{MIME: img.MIME, Data: img.Data}
	}
	return nil
}
