// pkg/parser/parser.go
package parser

import (
	"bytes"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/NivBraz/funcbox/internal/models"
)

// Tokenize lowercases text and returns its words: maximal runs of letters,
// numbers and underscores.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

// ParseWords extracts words from the visible text of HTML content
func ParseWords(content []byte) ([]string, error) {
	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	doc := goquery.NewDocumentFromNode(root)
	// if its script or style ignore
	doc.Find("script, style, noscript").Remove()

	var words []string
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			words = append(words, Tokenize(n.Data)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}

	extractText(root)
	return words, nil
}

// ParseWordBank extracts words from the word bank content, one per line
func ParseWordBank(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	var words []string

	for _, line := range lines {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}

	return words
}

// LooksLikeHTML reports whether content appears to be an HTML document.
func LooksLikeHTML(content []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(content))
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) ||
		bytes.HasPrefix(head, []byte("<html")) ||
		bytes.Contains(head, []byte("<body"))
}

// SortWordCounts sorts word counts by frequency (descending) and alphabetically for ties
func SortWordCounts(words []models.WordCount) {
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count == words[j].Count {
			return words[i].Word < words[j].Word
		}
		return words[i].Count > words[j].Count
	})
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
