package resolve

import (
	"strings"

	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/wikitext"
)

var fipsFields = [][2]string{
	{constants.FieldBlankName, constants.FieldBlankInfo},
	{constants.FieldBlank1Name, constants.FieldBlank1Info},
}

// FIPS reads the FIPS code declared by the article's settlement infobox. The
// code is only trusted when the article has exactly one infobox. Hyphens and
// spaces are removed, so "13-03440" yields "1303440".
func FIPS(doc *wikitext.Document) (string, bool) {
	tpl := doc.Only(constants.TemplateInfobox)
	if tpl == nil {
		return "", false
	}

	for _, pair := range fipsFields {
		label, ok := tpl.Get(pair[0])
		if !ok || !strings.Contains(label, constants.FIPSLabel) {
			continue
		}
		info, _ := tpl.Get(pair[1])
		code := strings.Join(strings.Fields(strings.ReplaceAll(info, "-", "")), "")
		return code, code != ""
	}
	return "", false
}
