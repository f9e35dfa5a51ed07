package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instructchat/internal/service"
)

func TestTurns_ClassPerRole(t *testing.T) {
	turns := []service.Turn{
		service.NewTurn(service.RoleUser, "What is 2+2?"),
		service.NewTurn(service.RoleAssistant, "4."),
		service.NewTurn(service.RoleUser, "And again?"),
		service.NewTurn(service.RoleError, "generation failed during generate: boom"),
	}

	got := Turns(turns)
	require.Len(t, got, 4)

	assert.Equal(t, ClassUser, got[0].Class)
	assert.Equal(t, ClassBot, got[1].Class)
	assert.Equal(t, ClassUser, got[2].Class)
	assert.Equal(t, ClassError, got[3].Class)

	assert.Equal(t, "What is 2+2?", string(got[0].HTML))
	assert.Equal(t, "<p>4.</p>", string(got[1].HTML))
	assert.Contains(t, string(got[3].HTML), "boom")
	assert.Equal(t, "Error generating response", got[3].Label)
}

func TestTurns_Empty(t *testing.T) {
	assert.Empty(t, Turns(nil))
}

func TestTurns_Idempotent(t *testing.T) {
	turns := []service.Turn{
		service.NewTurn(service.RoleUser, "hi"),
		service.NewTurn(service.RoleAssistant, "**bold** reply"),
	}
	assert.Equal(t, Turns(turns), Turns(turns))
}

func TestPlain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "escapes markup", in: "<b>hi</b>", want: "&lt;b&gt;hi&lt;/b&gt;"},
		{name: "keeps line breaks", in: "one\ntwo", want: "one<br>two"},
		{name: "crlf", in: "one\r\ntwo", want: "one<br>two"},
		{name: "ampersand", in: "a & b", want: "a &amp; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Plain(tt.in)))
		})
	}
}

func TestMarkdown(t *testing.T) {
	t.Run("formats code blocks", func(t *testing.T) {
		got := string(Markdown("```go\nfmt.Println(1)\n```"))
		assert.Contains(t, got, "<pre><code class=\"language-go\">")
	})

	t.Run("tables", func(t *testing.T) {
		got := string(Markdown("| a | b |\n|---|---|\n| 1 | 2 |"))
		assert.Contains(t, got, "<table>")
	})

	t.Run("raw html is not passed through", func(t *testing.T) {
		got := string(Markdown("hello <script>alert(1)</script>"))
		assert.False(t, strings.Contains(got, "<script>"), "got %q", got)
		assert.Contains(t, got, "raw HTML omitted")
	})

	t.Run("punctuation kept literal", func(t *testing.T) {
		got := string(Markdown(`Use "x" -- then 'y'...`))
		for _, entity := range []string{"&ldquo;", "&rdquo;", "&lsquo;", "&rsquo;", "&ndash;", "&mdash;", "&hellip;"} {
			assert.NotContains(t, got, entity)
		}
		assert.Contains(t, got, "--")
		assert.Contains(t, got, "...")
		assert.Contains(t, got, "&quot;x&quot;")
	})

	t.Run("line breaks kept", func(t *testing.T) {
		got := string(Markdown("line one\nline two"))
		assert.Contains(t, got, "<br")
	})
}
