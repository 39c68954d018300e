package htmlutil

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var ErrMissingElement = errors.New("missing element")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeText returns the visible text of sel with runs of whitespace
// collapsed to a single space.
func NormalizeText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		buffer.WriteString(GetText(n))
	}
	text := removeNonPrintable(buffer.String())
	text = innerWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// RequireIDs checks that every id is present in doc, the returned error
// wraps ErrMissingElement and lists every missing id.
func RequireIDs(doc *goquery.Document, ids ...string) error {
	var missing []string
	for _, id := range ids {
		if doc.Find("#"+id).Length() == 0 {
			missing = append(missing, "#"+id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingElement, strings.Join(missing, ", "))
	}
	return nil
}
