// Package sandbox provides isolated evaluation contexts for embedded code
// fragments. A context holds a variable-binding scope that persists across
// blocks on one page when the blocks share a context name; contexts are
// cached in the page's metadata map and therefore never leak across pages.
package sandbox

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
)

// Image is an evaluation result that renders as an inline image instead of
// preformatted text.
type Image struct {
	MIME string
	Data []byte
}

// String keeps transcripts readable when an image value is printed.
func (i Image) String() string {
	return fmt.Sprintf("image/%s (%d bytes)", i.MIME, len(i.Data))
}

// Result is the outcome of evaluating one top-level expression.
type Result struct {
	Source     string // expression source as written
	Value      any
	Output     string // captured print/println output
	Suppressed bool   // source ended with a statement terminator (";")
	Err        error
}

// Context is one isolated evaluation environment.
type Context struct {
	Name string
	vars map[string]any
}

func newContext(name string) *Context {
	return &Context{Name: name, vars: make(map[string]any)}
}

// Var returns a bound variable from the context scope.
func (c *Context) Var(name string) (any, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Bind sets a variable in the context scope. Used to pre-seed contexts with
// host values (for example image constructors).
func (c *Context) Bind(name string, value any) {
	c.vars[name] = value
}

var assignPattern = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_]*)\s*=([^=].*)$`)

// Eval evaluates one top-level expression in the context scope, capturing
// printed output. Assignments ("name = expr") bind into the scope and yield
// the assigned value. A trailing ";" executes normally but sets Suppressed.
func (c *Context) Eval(source string) Result {
	res := Result{Source: source}

	code := strings.TrimSpace(source)
	if strings.HasSuffix(code, ";") {
		res.Suppressed = true
		code = strings.TrimSpace(strings.TrimSuffix(code, ";"))
	}
	if code == "" {
		return res
	}

	target := ""
	if m := assignPattern.FindStringSubmatch(code); m != nil {
		target = m[1]
		code = strings.TrimSpace(m[2])
	}

	var out strings.Builder
	env := make(map[string]any, len(c.vars)+2)
	for k, v := range c.vars {
		env[k] = v
	}
	env["print"] = func(v any) any {
		fmt.Fprint(&out, v)
		return nil
	}
	env["println"] = func(v any) any {
		fmt.Fprintln(&out, v)
		return nil
	}

	value, err := expr.Eval(code, env)
	res.Output = out.String()
	if err != nil {
		res.Err = err
		return res
	}
	if target != "" {
		c.vars[target] = value
	}
	res.Value = value
	return res
}

// EvalAll splits source into top-level expressions and evaluates each one in
// order. It does not stop on errors; callers apply their own abort policy.
func (c *Context) EvalAll(source string) []Result {
	exprs := SplitExpressions(source)
	results := make([]Result, 0, len(exprs))
	for _, e := range exprs {
		results = append(results, c.Eval(e))
	}
	return results
}

// SplitExpressions splits a source fragment into top-level expressions.
// A new expression starts at a non-indented line when all brackets are
// balanced; indented lines and lines inside open brackets continue the
// current expression. Blank lines at bracket depth zero terminate it.
func SplitExpressions(source string) []string {
	var exprs []string
	var cur []string
	depth := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		e := strings.TrimRight(strings.Join(cur, "\n"), "\n")
		if strings.TrimSpace(e) != "" {
			exprs = append(exprs, e)
		}
		cur = nil
	}

	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if depth == 0 {
				flush()
			} else {
				cur = append(cur, line)
			}
			continue
		}
		indented := line != trimmed
		if len(cur) > 0 && depth == 0 && !indented {
			flush()
		}
		cur = append(cur, line)
		depth += bracketDelta(line)
		if depth < 0 {
			depth = 0
		}
	}
	flush()
	return exprs
}

// bracketDelta counts net bracket nesting on a line, skipping quoted string
// contents.
func bracketDelta(line string) int {
	depth := 0
	var quote rune
	escaped := false
	for _, r := range line {
		if escaped {
			escaped = false
			continue
		}
		if quote != 0 {
			switch r {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth
}
