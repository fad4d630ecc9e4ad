package wikitext

import (
	"strings"
)

// node is either a text run or a template.
type node interface {
	write(b *strings.Builder)
}

type textNode string

func (t textNode) write(b *strings.Builder) { b.WriteString(string(t)) }

// Document is a parsed run of wikitext.
type Document struct {
	nodes []node
}

// Parse parses text into a Document. It never fails: an opening "{{" that is
// never closed is kept as plain text and parsing resumes after it. Comments
// and <nowiki> or <pre> spans are opaque.
func Parse(text string) *Document {
	d := &Document{}
	textStart := 0
	flush := func(end int) {
		if end > textStart {
			d.nodes = append(d.nodes, textNode(text[textStart:end]))
		}
	}

	for i := 0; i < len(text); {
		if end, ok := skipOpaque(text, i); ok {
			i = end
			continue
		}
		if strings.HasPrefix(text[i:], "{{") {
			end := matchBraces(text, i)
			if end < 0 {
				i += 2
				continue
			}
			flush(i)
			d.nodes = append(d.nodes, parseTemplate(text[i:end]))
			i = end
			textStart = end
			continue
		}
		i++
	}
	flush(len(text))
	return d
}

// String serializes the document back to wikitext.
func (d *Document) String() string {
	var b strings.Builder
	d.write(&b)
	return b.String()
}

func (d *Document) write(b *strings.Builder) {
	for _, n := range d.nodes {
		n.write(b)
	}
}

// Templates returns every template in document order, including templates
// nested inside parameter values. A parent precedes its children.
func (d *Document) Templates() []*Template {
	var out []*Template
	for _, n := range d.nodes {
		tpl, ok := n.(*Template)
		if !ok {
			continue
		}
		out = append(out, tpl)
		for _, p := range tpl.params {
			out = append(out, p.value.Templates()...)
		}
	}
	return out
}

// Filter returns the templates whose name matches any of names.
func (d *Document) Filter(names ...string) []*Template {
	var out []*Template
	for _, tpl := range d.Templates() {
		if tpl.Matches(names...) {
			out = append(out, tpl)
		}
	}
	return out
}

// Only returns the single template matching names, or nil when there are
// zero or several.
func (d *Document) Only(names ...string) *Template {
	matches := d.Filter(names...)
	if len(matches) != 1 {
		return nil
	}
	return matches[0]
}

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// skipComment returns the index just past the comment starting at i.
// An unterminated comment runs to the end of the text.
func skipComment(s string, i int) int {
	end := strings.Index(s[i+len(commentOpen):], commentClose)
	if end < 0 {
		return len(s)
	}
	return i + len(commentOpen) + end + len(commentClose)
}

// verbatimTags hold text that is never parsed as markup.
var verbatimTags = []string{"nowiki", "pre"}

// skipOpaque reports whether a comment or a verbatim tag starts at i and
// returns the index just past it. A verbatim tag that is never closed only
// hides the opening tag itself.
func skipOpaque(s string, i int) (int, bool) {
	if s[i] != '<' {
		return i, false
	}
	if strings.HasPrefix(s[i:], commentOpen) {
		return skipComment(s, i), true
	}
	for _, tag := range verbatimTags {
		if !hasPrefixFold(s[i+1:], tag) {
			continue
		}
		rest := i + 1 + len(tag)
		if rest < len(s) && s[rest] != '>' && s[rest] != '/' && s[rest] != ' ' && s[rest] != '\t' && s[rest] != '\n' {
			continue
		}
		open := strings.IndexByte(s[rest:], '>')
		if open < 0 {
			return i, false
		}
		open += rest + 1
		if s[open-2] == '/' {
			return open, true
		}
		closeAt := indexFold(s[open:], "</"+tag)
		if closeAt < 0 {
			return open, true
		}
		closeAt += open
		end := strings.IndexByte(s[closeAt:], '>')
		if end < 0 {
			return len(s), true
		}
		return closeAt + end + 1, true
	}
	return i, false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// indexFold is strings.Index ignoring ASCII case in substr.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

// matchBraces returns the index just past the "}}" closing the "{{" at start,
// or -1 when the braces never balance.
func matchBraces(s string, start int) int {
	depth := 0
	for j := start; j < len(s); {
		if end, ok := skipOpaque(s, j); ok {
			j = end
			continue
		}
		switch {
		case strings.HasPrefix(s[j:], "{{"):
			depth++
			j += 2
		case strings.HasPrefix(s[j:], "}}"):
			depth--
			j += 2
			if depth == 0 {
				return j
			}
		default:
			j++
		}
	}
	return -1
}

// stripComments removes HTML comments from s.
func stripComments(s string) string {
	if !strings.Contains(s, commentOpen) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], commentOpen) {
			i = skipComment(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
