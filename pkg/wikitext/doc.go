// Package wikitext parses the template structure of MediaWiki article text.
//
// Only templates are modeled; everything else is kept as opaque text so that
// String reproduces the input byte for byte until a template is edited.
// Parameter values are parsed recursively, so templates nested in values
// (citations inside refs, formatnum calls) are live nodes as well.
//
//	doc := wikitext.Parse(text)
//	for _, tpl := range doc.Filter("Infobox settlement") {
//	    tpl.Set("population_total", "12,345")
//	}
//	text = doc.String()
package wikitext
