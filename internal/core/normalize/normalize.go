// Package normalize canonicalizes user supplied catalog names (meals, cuisines, locations)
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Remove format chars (ZWJ ZWNJ FEFF etc)
// 4 Width fold fullwidth to ASCII
// 5 Collapse whitespace to single spaces and trim
// Key additionally case folds so lookups ignore case
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pools of fresh transformer chains; a Transformer is not safe for concurrent use
var (
	namePool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKC,
				runes.Remove(runes.In(unicode.Cf)),
				width.Fold,
			)
		},
	}
	keyPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKC,
				runes.Remove(runes.In(unicode.Cf)),
				width.Fold,
				cases.Fold(),
			)
		},
	}
)

// Name returns the display form of s: case is kept, everything else is canonical
func Name(s string) string { return run(&namePool, s) }

// Key returns the case folded form of s for uniqueness and lookups
func Key(s string) string { return run(&keyPool, s) }

func run(p *sync.Pool, s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := p.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	p.Put(tr)

	return collapseSpaces(ns)
}

// collapseSpaces converts whitespace runs (newlines included) to one ASCII space and trims the edges
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
