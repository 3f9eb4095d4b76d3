// Package pattern implements the naming-pattern engine: rendering pattern
// templates against document metadata and deciding whether a rule applies to
// a document.
package pattern

import (
	"regexp"
	"strings"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	emptySep      = regexp.MustCompile(`\s*-\s*-\s*`)
	leadingSep    = regexp.MustCompile(`^\s*-\s*`)
	trailingSep   = regexp.MustCompile(`\s*-\s*$`)
)

// Render substitutes the document's token values into pattern and normalizes
// the result. Tokens are written as {Name}; tokens with no value are stripped
// rather than left as literal braces. The result may be empty when nothing
// resolved and the pattern carried no literal text; callers treat that as a
// validation condition, not an error here.
func Render(tmpl string, doc model.DocumentInfo) string {
	tokens := doc.Tokens()

	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		if tmpl[i] == '{' {
			if end := strings.IndexByte(tmpl[i:], '}'); end >= 0 {
				name := tmpl[i+1 : i+end]
				b.WriteString(tokens[name])
				i += end + 1
				continue
			}
		}
		b.WriteByte(tmpl[i])
		i++
	}

	return normalize(b.String())
}

// normalize collapses whitespace runs, folds separator runs left empty by
// stripped tokens into a single " - ", and trims dangling separators.
func normalize(s string) string {
	s = whitespaceRun.ReplaceAllString(s, " ")

	for {
		collapsed := emptySep.ReplaceAllString(s, " - ")
		if collapsed == s {
			break
		}
		s = collapsed
	}

	s = leadingSep.ReplaceAllString(s, "")
	s = trailingSep.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}
