package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/core/sanitizer"
)

func TestSanitizeStructContactFields(t *testing.T) {
	type contactForm struct {
		Name    string `sanitize:"trim,collapse_spaces"`
		Email   string `sanitize:"email"`
		Subject string `sanitize:"trim,single_line"`
		Message string `sanitize:"text"`
	}

	f := contactForm{
		Name:    "  Ada   Lovelace  ",
		Email:   " Ada@Example.COM ",
		Subject: "Hello\nthere",
		Message: "  line one\nline two  ",
	}

	require.NoError(t, sanitizer.SanitizeStruct(&f))

	assert.Equal(t, "Ada Lovelace", f.Name)
	assert.Equal(t, "ada@example.com", f.Email)
	assert.Equal(t, "Hello there", f.Subject)
	assert.Equal(t, "line one\nline two", f.Message, "message keeps its line breaks")
}

func TestSanitizeStructSkipsUntaggedStrings(t *testing.T) {
	type form struct {
		Tagged   string `sanitize:"trim"`
		Untagged string
	}

	f := form{Tagged: "  x  ", Untagged: "  y  "}
	require.NoError(t, sanitizer.SanitizeStruct(&f))

	assert.Equal(t, "x", f.Tagged)
	assert.Equal(t, "  y  ", f.Untagged)
}

func TestSanitizeStructMaxLength(t *testing.T) {
	type form struct {
		Summary string `sanitize:"trim,max:10"`
	}

	f := form{Summary: "  " + strings.Repeat("a", 20)}
	require.NoError(t, sanitizer.SanitizeStruct(&f))
	assert.Equal(t, strings.Repeat("a", 10), f.Summary)
}

func TestSanitizeStructNested(t *testing.T) {
	type inner struct {
		Value string `sanitize:"upper"`
	}
	type outer struct {
		Inner inner
		Ptr   *inner
	}

	o := outer{Inner: inner{Value: "abc"}, Ptr: &inner{Value: "def"}}
	require.NoError(t, sanitizer.SanitizeStruct(&o))

	assert.Equal(t, "ABC", o.Inner.Value)
	assert.Equal(t, "DEF", o.Ptr.Value)
}

func TestSanitizeStructSlice(t *testing.T) {
	type form struct {
		Tags []string `sanitize:"trim_lower"`
	}

	f := form{Tags: []string{" Go ", " WEB "}}
	require.NoError(t, sanitizer.SanitizeStruct(&f))
	assert.Equal(t, []string{"go", "web"}, f.Tags)
}

func TestSanitizeStructNonPointer(t *testing.T) {
	type form struct{}
	assert.Error(t, sanitizer.SanitizeStruct(form{}))
}

func TestToTitle(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", sanitizer.ToTitle("ada lovelace"))
	assert.Equal(t, "John McCarthy", sanitizer.ToTitle("john McCarthy"))
}

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "a b c", sanitizer.SingleLine("a\nb\r\nc"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "hello & goodbye", sanitizer.StripHTML("<b>hello</b> &amp; <i>goodbye</i>"))
}

func TestRemoveControlChars(t *testing.T) {
	assert.Equal(t, "a\tb\nc", sanitizer.RemoveControlChars("a\tb\nc\x00\x07"))
}

func TestMaxLengthRuneAware(t *testing.T) {
	assert.Equal(t, "héll", sanitizer.MaxLength("héllo", 4))
	assert.Equal(t, "", sanitizer.MaxLength("abc", 0))
	assert.Equal(t, "abc", sanitizer.MaxLength("abc", 10))
}

func TestRegisterSanitizer(t *testing.T) {
	sanitizer.RegisterSanitizer("reverse", func(s string) string {
		runes := []rune(s)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes)
	})

	type form struct {
		Code string `sanitize:"reverse"`
	}

	f := form{Code: "abc"}
	require.NoError(t, sanitizer.SanitizeStruct(&f))
	assert.Equal(t, "cba", f.Code)
}
