// Package render turns chat history into HTML fragments for the page template.
package render

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"instructchat/internal/service"
)

// CSS classes for each turn role.
const (
	ClassUser  = "user-message"
	ClassBot   = "bot-message"
	ClassError = "error-message"
)

// Element is one rendered turn.
type Element struct {
	Class string
	Label string
	HTML  template.HTML
}

// Raw HTML in replies is omitted from the output. Quotes and dashes are left as typed.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
	goldmark.WithRendererOptions(
		ghhtml.WithHardWraps(),
	),
)

// Turns renders turns in order, one Element per turn.
func Turns(turns []service.Turn) []Element {
	out := make([]Element, 0, len(turns))
	for _, t := range turns {
		out = append(out, Turn(t))
	}
	return out
}

// Turn renders a single turn according to its role.
func Turn(t service.Turn) Element {
	switch t.Role {
	case service.RoleAssistant:
		return Element{Class: ClassBot, Label: "Assistant", HTML: Markdown(t.Text)}
	case service.RoleError:
		return Element{Class: ClassError, Label: "Error generating response", HTML: Plain(t.Text)}
	default:
		return Element{Class: ClassUser, Label: "You", HTML: Plain(t.Text)}
	}
}

// Plain escapes s and keeps its line breaks.
func Plain(s string) template.HTML {
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// Markdown renders s as GitHub-flavored markdown. It falls back to Plain if conversion fails.
func Markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return Plain(s)
	}
	return template.HTML(strings.TrimSpace(buf.String()))
}
