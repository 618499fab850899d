package platform

import "strings"

// implicitReturnStopWords are statement keywords that cannot be prefixed with
// a result-returning expression. The set is shared across dialects; words a
// dialect lacks simply never match.
var implicitReturnStopWords = map[string]struct{}{
	"continue": {},
	"break":    {},
	"raise":    {},
	"yield":    {},
	"with":     {},
	"assert":   {},
	"del":      {},
	"import":   {},
	"pass":     {},
	"return":   {},
	"from":     {},
	"load":     {},
}

// Transform normalizes a raw submission and, when requested, wraps it into a
// single unit defining the reserved callable for the given machine's dialect.
//
// An empty submission after stripping yields a unit with an empty body;
// compiling that unit fails as a syntax error, which is propagated rather
// than special-cased here.
func Transform(raw string, opts WrapOptions, m Machine) string {
	result := raw

	if opts.StripTicks {
		// Remove inline code ticks. Block fences reduce to the same strip.
		result = strings.Trim(result, "` \n")
	}

	if !opts.Wrap {
		return result
	}

	if result == "" {
		return m.WrapUnit(nil, opts.IndentWidth)
	}

	lines := strings.Split(result, "\n")

	if opts.ImplicitReturn {
		// Add "return" if there is not one already and the last line is not
		// nested inside a block.
		last := lines[len(lines)-1]
		if !strings.HasPrefix(last, " ") && !strings.HasPrefix(last, "\t") {
			firstWord, _, _ := strings.Cut(last, " ")
			if _, stop := implicitReturnStopWords[firstWord]; !stop {
				lines[len(lines)-1] = "return " + last
			}
		}
	}

	return m.WrapUnit(lines, opts.IndentWidth)
}
