package planner

import (
	"strings"

	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/errors"
	"github.com/scaledbot/censusbot/pkg/policy"
	"github.com/scaledbot/censusbot/pkg/wikitext"
)

// Precheck decides whether the article may be planned at all. The text must
// mention the census template or the United States, and the bot-exclusion
// directives must allow the configured bot. Failures are *errors.SkipError.
func (p *Planner) Precheck(text string, doc *wikitext.Document) error {
	if !isTargetPlace(text) {
		return errors.Skip(errors.ErrNotTargetPlace)
	}
	if d := policy.Check(doc, p.cfg.BotName); !d.Allowed {
		p.logger.Debug().Str("directive", d.Directive).Str("rule", d.Rule).Msg("Bot exclusion directive denies edit")
		return errors.Skip(errors.ErrPolicyDenied)
	}
	return nil
}

func isTargetPlace(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range constants.TargetPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
