package wikitext

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// FieldSet is the field-level capability the planners need from a template.
type FieldSet interface {
	// Has reports whether a field with the given name exists.
	Has(name string) bool
	// Get returns the field's text with comments removed and whitespace trimmed.
	Get(name string) (string, bool)
	// Set adds or overwrites a field and reports whether the text changed.
	Set(name, value string) bool
	// Remove deletes every field with the name and reports whether any existed.
	Remove(name string) bool
}

var _ FieldSet = (*Template)(nil)

// Template is one {{...}} transclusion.
type Template struct {
	rawName string
	params  []*Param
}

// Param is a single template parameter. Positional parameters are named by
// their 1-based index.
type Param struct {
	rawName    string
	value      *Document
	positional bool
}

// Name returns the parameter name with surrounding whitespace removed.
func (p *Param) Name() string {
	return strings.TrimSpace(p.rawName)
}

// Value returns the parameter value with comments and surrounding whitespace removed.
func (p *Param) Value() string {
	return strings.TrimSpace(stripComments(p.value.String()))
}

// RawValue returns the value exactly as it appears in the article.
func (p *Param) RawValue() string {
	return p.value.String()
}

// Positional reports whether the parameter was given without a name.
func (p *Param) Positional() bool {
	return p.positional
}

func parseTemplate(raw string) *Template {
	inner := raw[2 : len(raw)-2]
	parts := splitTopLevel(inner, '|')

	tpl := &Template{rawName: parts[0]}
	position := 0
	for _, part := range parts[1:] {
		if eq := indexTopLevel(part, '='); eq >= 0 {
			tpl.params = append(tpl.params, &Param{rawName: part[:eq], value: Parse(part[eq+1:])})
			continue
		}
		position++
		tpl.params = append(tpl.params, &Param{
			rawName:    strconv.Itoa(position),
			value:      Parse(part),
			positional: true,
		})
	}
	return tpl
}

// Name returns the template name without comments or surrounding whitespace.
func (t *Template) Name() string {
	return strings.TrimSpace(stripComments(t.rawName))
}

// Matches reports whether the template name equals any of names, ignoring
// case, underscores versus spaces, and a "Template:" prefix.
func (t *Template) Matches(names ...string) bool {
	own := normalizeName(t.Name())
	for _, name := range names {
		if own == normalizeName(name) {
			return true
		}
	}
	return false
}

// Params returns the parameters in order.
func (t *Template) Params() []*Param {
	out := make([]*Param, len(t.params))
	copy(out, t.params)
	return out
}

// Param returns the last parameter with the given name, or nil.
func (t *Template) Param(name string) *Param {
	name = strings.TrimSpace(name)
	for i := len(t.params) - 1; i >= 0; i-- {
		if t.params[i].Name() == name {
			return t.params[i]
		}
	}
	return nil
}

// Has reports whether a parameter with the given name exists.
func (t *Template) Has(name string) bool {
	return t.Param(name) != nil
}

// Get returns the cleaned value of the named parameter.
func (t *Template) Get(name string) (string, bool) {
	p := t.Param(name)
	if p == nil {
		return "", false
	}
	return p.Value(), true
}

// Set overwrites the named parameter, keeping the whitespace around its old
// value, or appends it using the layout of the last named parameter.
func (t *Template) Set(name, value string) bool {
	value = strings.TrimSpace(value)
	if p := t.Param(name); p != nil {
		if p.Value() == value {
			return false
		}
		lead, trail := surroundingSpace(p.value.String())
		p.value = Parse(lead + value + trail)
		return true
	}

	p := &Param{rawName: name, value: Parse(value)}
	if ref := t.lastNamed(); ref != nil {
		nameLead, nameTrail := surroundingSpace(ref.rawName)
		valueLead, valueTrail := surroundingSpace(ref.value.String())
		p.rawName = nameLead + name + nameTrail
		p.value = Parse(valueLead + value + valueTrail)
	}
	t.params = append(t.params, p)
	return true
}

// Remove deletes every parameter with the given name.
func (t *Template) Remove(name string) bool {
	name = strings.TrimSpace(name)
	kept := t.params[:0]
	removed := false
	for _, p := range t.params {
		if p.Name() == name {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	t.params = kept
	return removed
}

// String serializes the template back to wikitext.
func (t *Template) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Template) write(b *strings.Builder) {
	b.WriteString("{{")
	b.WriteString(t.rawName)
	for _, p := range t.params {
		b.WriteByte('|')
		if !p.positional {
			b.WriteString(p.rawName)
			b.WriteByte('=')
		}
		p.value.write(b)
	}
	b.WriteString("}}")
}

func (t *Template) lastNamed() *Param {
	for i := len(t.params) - 1; i >= 0; i-- {
		if !t.params[i].positional {
			return t.params[i]
		}
	}
	return nil
}

// normalizeName folds a template name for comparison.
func normalizeName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "_", " ")
	if len(name) >= len("template:") && strings.EqualFold(name[:len("template:")], "template:") {
		name = name[len("template:"):]
	}
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// surroundingSpace returns the leading and trailing whitespace of s. For an
// all-blank s, whitespace up to the first newline counts as leading.
func surroundingSpace(s string) (string, string) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			return s[:nl], s[nl:]
		}
		return s, ""
	}
	start := strings.Index(s, trimmed)
	return s[:start], s[start+len(trimmed):]
}

// splitTopLevel splits s at every sep that is not inside a nested template,
// a wiki link, a comment or a verbatim span.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	last := 0
	for _, i := range topLevelIndexes(s, sep, false) {
		parts = append(parts, s[last:i])
		last = i + 1
	}
	return append(parts, s[last:])
}

// indexTopLevel returns the first top-level index of sep, or -1.
func indexTopLevel(s string, sep byte) int {
	idx := topLevelIndexes(s, sep, true)
	if len(idx) == 0 {
		return -1
	}
	return idx[0]
}

func topLevelIndexes(s string, sep byte, first bool) []int {
	var idx []int
	braces, brackets := 0, 0
	for i := 0; i < len(s); {
		if end, ok := skipOpaque(s, i); ok {
			i = end
			continue
		}
		switch {
		case strings.HasPrefix(s[i:], "{{"):
			braces++
			i += 2
			continue
		case strings.HasPrefix(s[i:], "}}") && braces > 0:
			braces--
			i += 2
			continue
		case strings.HasPrefix(s[i:], "[["):
			brackets++
			i += 2
			continue
		case strings.HasPrefix(s[i:], "]]") && brackets > 0:
			brackets--
			i += 2
			continue
		}
		if s[i] == sep && braces == 0 && brackets == 0 {
			idx = append(idx, i)
			if first {
				return idx
			}
		}
		i++
	}
	return idx
}
