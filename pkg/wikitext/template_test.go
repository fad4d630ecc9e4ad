package wikitext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramNames(tpl *Template) []string {
	var names []string
	for _, p := range tpl.Params() {
		names = append(names, p.Name())
	}
	return names
}

func TestTemplateParams(t *testing.T) {
	doc := Parse("{{coord|33|57|N|format=dms|[[Link|label]]|{{nested|a=b}}}}")
	tpl := doc.Only("coord")
	require.NotNil(t, tpl)

	want := []string{"1", "2", "3", "format", "4", "5"}
	if diff := cmp.Diff(want, paramNames(tpl)); diff != "" {
		t.Errorf("param names mismatch (-want +got):\n%s", diff)
	}

	v, ok := tpl.Get("4")
	assert.True(t, ok)
	assert.Equal(t, "[[Link|label]]", v)

	v, ok = tpl.Get("5")
	assert.True(t, ok)
	assert.Equal(t, "{{nested|a=b}}", v)

	assert.True(t, tpl.Params()[0].Positional())
	assert.False(t, tpl.Params()[3].Positional())
}

func TestTemplateGet(t *testing.T) {
	tpl := Parse(sampleArticle).Only("Infobox settlement")
	require.NotNil(t, tpl)

	v, ok := tpl.Get("population_total")
	assert.True(t, ok)
	assert.Equal(t, "127,315", v)

	_, ok = tpl.Get("population_est")
	assert.False(t, ok)

	assert.True(t, tpl.Has("blank_info"))
	assert.False(t, tpl.Has("blank1_info"))
}

func TestTemplateGetLastDuplicate(t *testing.T) {
	tpl := Parse("{{x|a=1|a=2}}").Only("x")
	v, _ := tpl.Get("a")
	assert.Equal(t, "2", v)
}

func TestTemplateSet(t *testing.T) {
	t.Run("overwrite keeps layout", func(t *testing.T) {
		doc := Parse("{{x\n| a   = 1\n| b   = 2\n}}")
		tpl := doc.Only("x")
		assert.True(t, tpl.Set("a", "10"))
		assert.Equal(t, "{{x\n| a   = 10\n| b   = 2\n}}", doc.String())
	})

	t.Run("unchanged value", func(t *testing.T) {
		doc := Parse("{{x|a= 1 <!-- c -->}}")
		tpl := doc.Only("x")
		assert.False(t, tpl.Set("a", "1"))
		assert.Equal(t, "{{x|a= 1 <!-- c -->}}", doc.String())
	})

	t.Run("append copies last named param", func(t *testing.T) {
		doc := Parse("{{x\n| a = 1\n| b = 2\n}}")
		tpl := doc.Only("x")
		assert.True(t, tpl.Set("c", "3"))
		assert.Equal(t, "{{x\n| a = 1\n| b = 2\n| c = 3\n}}", doc.String())
	})

	t.Run("append compact", func(t *testing.T) {
		doc := Parse("{{US Census population|1990=5|2000=6}}")
		tpl := doc.Only("US Census population")
		assert.True(t, tpl.Set("2020", "7"))
		assert.Equal(t, "{{US Census population|1990=5|2000=6|2020=7}}", doc.String())
	})

	t.Run("append to bare template", func(t *testing.T) {
		doc := Parse("{{x}}")
		assert.True(t, doc.Only("x").Set("a", "1"))
		assert.Equal(t, "{{x|a=1}}", doc.String())
	})

	t.Run("fill blank value", func(t *testing.T) {
		doc := Parse("{{x\n| a = \n| b = 2\n}}")
		assert.True(t, doc.Only("x").Set("a", "1"))
		assert.Equal(t, "{{x\n| a = 1\n| b = 2\n}}", doc.String())
	})

	t.Run("nested template edited in place", func(t *testing.T) {
		doc := Parse("{{outer|inner={{x|a=1}}}}")
		inner := doc.Only("x")
		require.NotNil(t, inner)
		inner.Set("a", "2")
		assert.Equal(t, "{{outer|inner={{x|a=2}}}}", doc.String())
	})
}

func TestTemplateRemove(t *testing.T) {
	doc := Parse("{{x\n|a=1\n|b=2\n|a=3\n}}")
	tpl := doc.Only("x")
	assert.True(t, tpl.Remove("a"))
	assert.False(t, tpl.Remove("a"))
	assert.Equal(t, "{{x\n|b=2\n}}", doc.String())
}

func TestTemplateSetThenGet(t *testing.T) {
	var fs FieldSet = Parse("{{x|a=1}}").Only("x")
	fs.Set("b", "two words")
	v, ok := fs.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "two words", v)
}
