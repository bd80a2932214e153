package htmltext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Options controls Convert.
type Options struct {
	// IgnoreErrors returns whatever text could be recovered instead of failing.
	IgnoreErrors bool
	// DropLinks keeps anchor text but omits the link target.
	DropLinks bool
}

// skipped elements carry no readable text.
const skipped = "head, script, style, noscript, template, svg, iframe, object"

var (
	blocks = map[string]bool{
		"address": true, "article": true, "aside": true, "blockquote": true,
		"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
		"figcaption": true, "figure": true, "footer": true, "form": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"header": true, "hr": true, "li": true, "main": true, "nav": true,
		"ol": true, "p": true, "pre": true, "section": true, "table": true,
		"tr": true, "ul": true,
	}

	reSpaces     = regexp.MustCompile(`[ \t\r\f\v]+`)
	reBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Convert renders an HTML document as plain text: one line per block element,
// collapsed whitespace, scripts and styles removed.
func Convert(document string, opts Options) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		if opts.IgnoreErrors {
			return "", nil
		}
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find(skipped).Remove()

	var b strings.Builder
	for _, n := range doc.Selection.Nodes {
		walk(&b, n, opts, false)
	}

	return tidy(b.String()), nil
}

func walk(b *strings.Builder, n *html.Node, opts Options, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			b.WriteString(n.Data)
		} else {
			b.WriteString(reSpaces.ReplaceAllString(strings.ReplaceAll(n.Data, "\n", " "), " "))
		}
		return
	case html.ElementNode:
		// handled below
	case html.DocumentNode:
		walkChildren(b, n, opts, pre)
		return
	default:
		return
	}

	tag := n.Data
	switch tag {
	case "br":
		b.WriteString("\n")
		return
	case "td", "th":
		walkChildren(b, n, opts, pre)
		b.WriteString(" ")
		return
	case "a":
		start := b.Len()
		walkChildren(b, n, opts, pre)
		if opts.DropLinks {
			return
		}
		text := strings.TrimSpace(b.String()[start:])
		if href := attr(n, "href"); href != "" && href != text && !strings.HasPrefix(href, "#") {
			fmt.Fprintf(b, " [%s]", href)
		}
		return
	}

	if blocks[tag] {
		b.WriteString("\n")
		walkChildren(b, n, opts, pre || tag == "pre")
		b.WriteString("\n")
		return
	}

	walkChildren(b, n, opts, pre)
}

func walkChildren(b *strings.Builder, n *html.Node, opts Options, pre bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(b, c, opts, pre)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = reBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
