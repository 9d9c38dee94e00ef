package readability

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ResolveLinks rewrites relative href and src attributes in an HTML
// fragment to absolute URLs resolved against base. Absolute references
// (including mailto: and friends) are left alone.
func ResolveLinks(fragment, base string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	resolve := func(attr string) func(int, *goquery.Selection) {
		return func(_ int, s *goquery.Selection) {
			val, ok := s.Attr(attr)
			if !ok || val == "" {
				return
			}
			ref, err := url.Parse(val)
			if err != nil || ref.IsAbs() {
				return
			}
			s.SetAttr(attr, baseURL.ResolveReference(ref).String())
		}
	}
	doc.Find("a[href]").Each(resolve("href"))
	doc.Find("img[src]").Each(resolve("src"))

	// goquery wraps fragments in html/body; unwrap on the way out.
	return doc.Find("body").Html()
}
