// Package template implements the small `${...}` placeholder language used
// throughout field descriptions (see internal/schema). A template string is
// compiled once, at ingestion time, into an ordered sequence of Expr values
// that the value builder later renders against a per-request seed.
package template

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ExprKind discriminates the members of the closed Expr sum.
type ExprKind int

const (
	// KindLiteral is a run of text copied verbatim.
	KindLiteral ExprKind = iota
	// KindVariable is a recognized (or unrecognized) token name.
	KindVariable
	// KindRange is an inclusive-low/exclusive-high integer range.
	KindRange
)

// Expr is one element of a compiled template. Exactly one of its fields is
// meaningful, selected by Kind.
type Expr struct {
	Kind ExprKind

	Literal string

	Variable string

	RangeMin int64
	RangeMax int64
}

// Parse compiles a template string into an ordered sequence of Expr values.
//
// Placeholders are delimited by "${" and "}" and do not nest. Everything
// outside a placeholder is a literal run. A placeholder whose content is of
// the form "<int>..<int>" becomes a Range; anything else becomes a Variable.
// An unterminated "${" captures the remainder of the string as a single
// placeholder.
func Parse(s string) ([]Expr, error) {
	var exprs []Expr

	var literal strings.Builder

	flushLiteral := func() {
		if literal.Len() > 0 {
			exprs = append(exprs, Expr{Kind: KindLiteral, Literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], "${") {
			flushLiteral()

			rest := s[i+2:]
			end := strings.IndexByte(rest, '}')

			var content string
			if end == -1 {
				// Unterminated placeholder: the tail is the whole content.
				content = rest
				i = len(s)
			} else {
				content = rest[:end]
				i += 2 + end + 1
			}

			expr, err := compilePlaceholder(content)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
			continue
		}

		literal.WriteByte(s[i])
		i++
	}

	flushLiteral()

	return exprs, nil
}

// compilePlaceholder turns the text between "${" and "}" into a Range or
// Variable expression.
func compilePlaceholder(content string) (Expr, error) {
	if min, max, ok := parseRange(content); ok {
		if max <= min {
			return Expr{}, errors.Errorf("template range %q: max must be greater than min", content)
		}
		return Expr{Kind: KindRange, RangeMin: min, RangeMax: max}, nil
	}

	if strings.Contains(content, "..") {
		return Expr{}, errors.Errorf("template placeholder %q looks like a range but its bounds aren't valid integers", content)
	}

	return Expr{Kind: KindVariable, Variable: content}, nil
}

// parseRange recognizes "<int>..<int>" and reports whether it matched.
func parseRange(content string) (min, max int64, ok bool) {
	idx := strings.Index(content, "..")
	if idx == -1 {
		return 0, 0, false
	}

	minStr, maxStr := content[:idx], content[idx+2:]

	min, err := strconv.ParseInt(strings.TrimSpace(minStr), 10, 64)
	if err != nil {
		return 0, 0, false
	}

	max, err = strconv.ParseInt(strings.TrimSpace(maxStr), 10, 64)
	if err != nil {
		return 0, 0, false
	}

	return min, max, true
}
