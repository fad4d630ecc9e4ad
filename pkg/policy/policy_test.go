package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scaledbot/censusbot/pkg/wikitext"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		text string
		bot  string
		want bool
		rule string
	}{
		{"no directive", "Some article about the [[United States]].", "Scaledbot", true, RuleNoDirective},
		{"deny all", "{{bots|deny=all}}", "Scaledbot", false, "deny=all"},
		{"deny all other bot", "{{bots|deny=all}}", "AnyBot", false, "deny=all"},
		{"allow other bot", "{{bots|allow=BotX}}", "BotY", false, "allow=botx"},
		{"deny named bot", "{{bots|deny=OtherBot, Scaledbot}}", "Scaledbot", false, "deny=otherbot,scaledbot"},
		{"deny other bot", "{{bots|deny=OtherBot}}", "Scaledbot", true, RuleDefault},
		{"allow named case-insensitive", "{{Bots|allow=SCALEDBOT}}", "Scaledbot", true, "allow=scaledbot"},
		{"allow none", "{{bots|allow=none}}", "Scaledbot", false, "allow=none"},
		{"deny none", "{{bots|deny=none}}", "Scaledbot", true, "deny=none"},
		{"bare nobots", "{{nobots}}", "Scaledbot", false, RuleNoBots},
		{"bare bots", "{{bots}}", "Scaledbot", true, RuleDefault},
		{"nobots with other param", "{{nobots|reason=vandalism}}", "Scaledbot", true, RuleDefault},
		{"first rule wins", "{{bots|allow=Scaledbot|deny=all}}", "Scaledbot", true, "allow=scaledbot"},
		{"first directive only", "{{bots|allow=all}}{{nobots}}", "Scaledbot", true, "allow=all"},
		{"commented directive ignored", "<!-- {{nobots}} -->", "Scaledbot", true, RuleNoDirective},
		{"directive in infobox", "{{Infobox settlement|note={{nobots}}}}", "Scaledbot", false, RuleNoBots},
		{"directive after stray braces", "{{Infobox settlement|population_total=1}}\nStray {{ opener in prose.\n{{nobots}}\n", "Scaledbot", false, RuleNoBots},
		{"directive inside nowiki", "Use <nowiki>{{nobots}}</nowiki> to opt out.", "Scaledbot", true, RuleNoDirective},
		{"directive inside pre", "<pre>\n{{bots|deny=all}}\n</pre>", "Scaledbot", true, RuleNoDirective},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := wikitext.Parse(tt.text)
			assert.Equal(t, tt.want, Allowed(doc, tt.bot))

			d := Check(doc, tt.bot)
			assert.Equal(t, tt.want, d.Allowed)
			assert.Equal(t, tt.rule, d.Rule)
		})
	}
}

func TestCheckDoesNotMutate(t *testing.T) {
	text := "{{bots | deny = Scaledbot , Other }}\n"
	doc := wikitext.Parse(text)
	Check(doc, "Scaledbot")
	assert.Equal(t, text, doc.String())
}

func TestCheckDirectiveName(t *testing.T) {
	d := Check(wikitext.Parse("{{NoBots}}"), "Scaledbot")
	assert.Equal(t, "NoBots", d.Directive)
	assert.False(t, d.Allowed)
}
