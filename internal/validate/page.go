package validate

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// pageMeta is what a source check reads from a fetched HTML page
type pageMeta struct {
	Title     string
	Published string
}

// publishedMetaKeys are meta name/property/itemprop values that carry a
// publication date, in order of preference
var publishedMetaKeys = []string{
	"article:published_time",
	"og:published_time",
	"datepublished",
	"date",
	"pubdate",
	"dc.date",
	"dcterms.created",
}

// parsePageMeta extracts the document title and publication date
func parsePageMeta(r io.Reader) (pageMeta, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return pageMeta{}, err
	}

	var meta pageMeta
	found := make(map[string]string)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "body", "script", "style":
				return
			case "title":
				if meta.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					meta.Title = strings.Join(strings.Fields(n.FirstChild.Data), " ")
				}
			case "meta":
				key, content := metaAttrs(n)
				if key != "" && content != "" {
					if _, ok := found[key]; !ok {
						found[key] = content
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, key := range publishedMetaKeys {
		if v, ok := found[key]; ok {
			meta.Published = v
			break
		}
	}

	return meta, nil
}

func metaAttrs(n *html.Node) (key, content string) {
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "name", "property", "itemprop":
			if key == "" {
				key = strings.ToLower(strings.TrimSpace(attr.Val))
			}
		case "content":
			content = strings.TrimSpace(attr.Val)
		}
	}
	return key, content
}
