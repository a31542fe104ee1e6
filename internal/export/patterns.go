// Package export turns an annotation session into the markdown document a
// coding agent reads, including the search patterns and hints it uses to
// find each element in source.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mj1618/desktop-annotator/internal/model"
)

// SearchPatterns returns regular expressions that locate an element's
// definition in a codebase, most specific first: identifier-based patterns,
// then title-based ones. The order carries confidence and is never sorted.
// Empty inputs contribute nothing.
func SearchPatterns(identifier, title, role string) []string {
	var out []string
	add := func(p string) {
		for _, existing := range out {
			if existing == p {
				return
			}
		}
		out = append(out, p)
	}

	if identifier != "" {
		id := regexp.QuoteMeta(identifier)
		add("identifier.*" + id)
		add(`"` + id + `"`)
		if looksLikeSymbolName(identifier) {
			add(`systemName:\s*"` + id + `"`)
			add(`systemSymbolName:\s*"` + id + `"`)
		}
	}
	if title != "" {
		t := regexp.QuoteMeta(title)
		add(`Text\("` + t + `"\)`)
		if r := model.DisplayRole(role); r != "" {
			add(r + `\("` + t + `"\)`)
		}
	}
	return out
}

// looksLikeSymbolName guesses whether an identifier is an SF Symbol style
// icon name such as "gear.badge": dotted and without spaces.
func looksLikeSymbolName(s string) bool {
	return strings.Contains(s, ".") && !strings.ContainsAny(s, " \t")
}

// DisambiguationHint describes the element by its nearest named sibling so
// a search can tell apart several elements that share a label. It reports
// false when the element has no identifier or title to search for, or no
// sibling carries a usable label.
func DisambiguationHint(a model.Annotation) (string, bool) {
	own := a.Element.Identifier
	if own == "" {
		own = a.Element.Title
	}
	if own == "" {
		return "", false
	}
	sib, label, ok := namedSibling(a.Element.Siblings)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("This element is near %s — search for %q alongside %q in the same container.",
		SiblingName(sib), own, label), true
}

// namedSibling picks the first sibling with a title, else the first with an
// identifier.
func namedSibling(siblings []model.SiblingDescriptor) (model.SiblingDescriptor, string, bool) {
	for _, s := range siblings {
		if s.Title != "" {
			return s, s.Title, true
		}
	}
	for _, s := range siblings {
		if s.Identifier != "" {
			return s, s.Identifier, true
		}
	}
	return model.SiblingDescriptor{}, "", false
}
