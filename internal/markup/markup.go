// Package markup converts between the HTML bodies stored by the server and
// the markdown edited and rendered in the terminal.
package markup

import (
	"bytes"
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	once      sync.Once
	toMD      *md.Converter
	toHTML    goldmark.Markdown
	sanitizer *bluemonday.Policy
)

func setup() {
	toMD = md.NewConverter("", true, nil)
	toMD.Use(plugin.GitHubFlavored())

	toHTML = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	sanitizer = bluemonday.UGCPolicy()
	sanitizer.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span")
}

// ToMarkdown converts a stored HTML body to markdown. Plain text passes
// through unchanged.
func ToMarkdown(body string) (string, error) {
	once.Do(setup)
	if strings.TrimSpace(body) == "" {
		return "", nil
	}
	return toMD.ConvertString(body)
}

// ToHTML renders markdown to sanitized HTML for storage.
func ToHTML(markdown string) (string, error) {
	once.Do(setup)
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := toHTML.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(sanitizer.Sanitize(buf.String())), nil
}
