// Package policy evaluates the {{bots}} and {{nobots}} exclusion directives
// that let article editors allow or deny automated edits.
package policy

import (
	"strings"

	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/wikitext"
)

// Decision explains the outcome of Check.
type Decision struct {
	Allowed bool `json:"allowed" yaml:"allowed"`
	// Directive is the template name as written, empty when the article has none.
	Directive string `json:"directive,omitempty" yaml:"directive,omitempty"`
	// Rule is the parameter that decided, e.g. "deny=all", or a fixed reason.
	Rule string `json:"rule" yaml:"rule"`
}

// Fixed rules reported when no parameter decided.
const (
	RuleNoDirective = "no directive"
	RuleNoBots      = "nobots"
	RuleDefault     = "default"
)

// Allowed reports whether bot may edit the article.
func Allowed(doc *wikitext.Document, bot string) bool {
	return Check(doc, bot).Allowed
}

// Check evaluates the first bot directive in doc. Parameters are read in
// order. An allow list decides on its own: bots it does not name are denied.
// A deny list decides only when it names bot or "all". A bare {{nobots}}
// denies everyone. doc is not modified.
func Check(doc *wikitext.Document, bot string) Decision {
	bot = strings.ToLower(strings.TrimSpace(bot))

	var directive *wikitext.Template
	for _, tpl := range doc.Templates() {
		if tpl.Matches(constants.TemplateBots, constants.TemplateNoBots) {
			directive = tpl
			break
		}
	}
	if directive == nil {
		return Decision{Allowed: true, Rule: RuleNoDirective}
	}

	d := Decision{Directive: directive.Name()}
	params := directive.Params()
	for _, p := range params {
		name := p.Name()
		if name != "allow" && name != "deny" {
			continue
		}
		tokens := splitTokens(p.RawValue())
		rule := name + "=" + strings.Join(tokens, ",")
		none := strings.Join(tokens, "") == "none"
		named := mentions(tokens, bot)

		switch {
		case name == "allow" && none:
			return d.with(false, rule)
		case name == "allow":
			return d.with(named, rule)
		case name == "deny" && none:
			return d.with(true, rule)
		case name == "deny" && named:
			return d.with(false, rule)
		}
	}

	if len(params) == 0 && directive.Matches(constants.TemplateNoBots) {
		return d.with(false, RuleNoBots)
	}
	return d.with(true, RuleDefault)
}

func (d Decision) with(allowed bool, rule string) Decision {
	d.Allowed = allowed
	d.Rule = rule
	return d
}

func splitTokens(value string) []string {
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(part))
	}
	return parts
}

func mentions(tokens []string, bot string) bool {
	for _, tok := range tokens {
		if tok == bot || tok == "all" {
			return true
		}
	}
	return false
}
