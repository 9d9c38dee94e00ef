// Package readability extracts the main article from an HTML document by
// scoring block elements for content density against boilerplate.
package readability

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoArticle is returned when no element scores high enough to count as
// the document's main content.
var ErrNoArticle = errors.New("no readable article found")

// Article holds everything the extractor could identify. Every field may be
// empty; pages routinely lack metadata.
type Article struct {
	Title         string
	ContentHTML   string
	TextContent   string
	Excerpt       string
	Byline        string
	SiteName      string
	Lang          string
	PublishedTime string
}

// Extractor scores candidate nodes and picks the best one.
type Extractor struct {
	minTextLen int
	minScore   float64
}

// NewExtractor returns an extractor with the default thresholds.
func NewExtractor() *Extractor {
	return &Extractor{
		minTextLen: 140,
		minScore:   20,
	}
}

// Extract parses rawHTML and returns the identified article. It returns
// ErrNoArticle when nothing on the page looks like main content.
func (e *Extractor) Extract(rawHTML string) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	article := &Article{}
	article.Title = extractTitle(doc)
	if lang, ok := doc.Find("html").Attr("lang"); ok {
		article.Lang = strings.TrimSpace(lang)
	}
	extractMetadata(doc, article)

	stripBoilerplate(doc)

	best := e.bestCandidate(doc)
	if best == nil {
		return nil, ErrNoArticle
	}

	if html, err := best.Html(); err == nil {
		article.ContentHTML = html
	}
	article.TextContent = blockText(best)

	if article.Excerpt == "" && article.TextContent != "" {
		article.Excerpt = excerptOf(article.TextContent, 200)
	}

	return article, nil
}

func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())

	// Drop trailing site names like "Headline - Example News".
	for _, sep := range []string{" - ", " | "} {
		if parts := strings.Split(title, sep); len(parts) > 1 {
			title = parts[0]
		}
	}
	return title
}

func extractMetadata(doc *goquery.Document, article *Article) {
	doc.Find("meta[property]").Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content, _ := s.Attr("content")
		if content == "" {
			return
		}
		switch prop {
		case "og:title":
			if article.Title == "" {
				article.Title = content
			}
		case "og:site_name":
			article.SiteName = content
		case "og:description":
			article.Excerpt = content
		case "og:locale":
			if article.Lang == "" {
				article.Lang = content
			}
		case "article:published_time":
			article.PublishedTime = content
		case "article:author":
			if article.Byline == "" {
				article.Byline = content
			}
		}
	})

	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		if content == "" {
			return
		}
		switch name {
		case "author", "byl":
			if article.Byline == "" {
				article.Byline = content
			}
		case "description":
			if article.Excerpt == "" {
				article.Excerpt = content
			}
		case "twitter:title":
			if article.Title == "" {
				article.Title = content
			}
		case "twitter:description":
			if article.Excerpt == "" {
				article.Excerpt = content
			}
		}
	})
}

func stripBoilerplate(doc *goquery.Document) {
	doc.Find("script, style, nav, header, footer, aside, form, iframe, noscript, svg, button").Remove()
	doc.Find("[hidden], .hidden, [style*='display:none'], [style*='display: none']").Remove()
	doc.Find(".comments, .comment, .share, .social, .sidebar, .ad, .ads, .advertisement, .promo").Remove()
}

type candidate struct {
	sel   *goquery.Selection
	score float64
}

func (e *Extractor) bestCandidate(doc *goquery.Document) *goquery.Selection {
	var best *candidate

	doc.Find("p, div, article, section, main").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(text) < e.minTextLen {
			return
		}
		score := scoreElement(s, text)
		if score < e.minScore {
			return
		}
		if best == nil || score > best.score {
			best = &candidate{sel: s, score: score}
		}
	})

	if best == nil {
		return nil
	}
	return best.sel
}

var (
	positivePatterns = []string{"content", "article", "post", "entry", "text", "main", "body", "story"}
	negativePatterns = []string{"sidebar", "comment", "footer", "header", "nav", "menu", "ad", "social", "related"}
)

func scoreElement(s *goquery.Selection, text string) float64 {
	score := float64(utf8.RuneCountInString(text))

	switch goquery.NodeName(s) {
	case "article":
		score *= 2
	case "main":
		score *= 1.8
	case "section":
		score *= 1.5
	}

	id, _ := s.Attr("id")
	class, _ := s.Attr("class")
	hints := strings.ToLower(id + " " + class)

	for _, pattern := range positivePatterns {
		if strings.Contains(hints, pattern) {
			score *= 1.5
		}
	}
	for _, pattern := range negativePatterns {
		if strings.Contains(hints, pattern) {
			score *= 0.5
		}
	}

	// Link farms score high on raw length; punish link-dense blocks.
	if links := s.Find("a").Length(); links > 0 {
		linkDensity := float64(links) / float64(utf8.RuneCountInString(text)+1)
		if linkDensity > 0.3 {
			score *= 0.5
		}
	}

	return score
}

const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre, figcaption, td"

// blockText renders a selection as plain text with one line per block
// element. Nested blocks are skipped so their text is not emitted twice.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		// A block is one output line; source HTML wraps freely inside it.
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		b.WriteString(text)
		b.WriteString("\n")
	})
	if b.Len() == 0 {
		return strings.TrimSpace(sel.Text())
	}
	return strings.TrimSpace(b.String())
}

func excerptOf(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
