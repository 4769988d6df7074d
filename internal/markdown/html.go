package markdown

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// HTMLToMarkdown converts pasted HTML into markdown so it can follow the
// same parse and convert path as typed input.
func HTMLToMarkdown(source string) (string, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return "", fmt.Errorf("markdown: parse html: %w", err)
	}

	out, err := htmltomarkdown.ConvertNode(doc)
	if err != nil {
		return "", fmt.Errorf("markdown: convert html: %w", err)
	}
	return string(out), nil
}
