// Package goquery implements the DOM side of doxfix using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/doxfix"
	"golang.org/x/net/html"
)

// Selectors for the elements each rule touches.
const (
	LinkSelector          = "a"
	TemplateParamSelector = "td.memTemplParams, .memtemplate"
	MemberItemSelector    = "td.memItemLeft, td.memTemplItemLeft, td.memItemRight, td.memTemplItemRight"
	ClassIndexSelector    = ".classindex"
)

// ClassIndexWrapper is the container each class index is wrapped in.
const ClassIndexWrapper = `<div style="overflow-x:auto"></div>`

var _ doxfix.Fixer = (*Fixer)(nil)

// Fixer applies the documentation fixes to Doxygen pages.
type Fixer struct{}

// NewFixer creates a new Fixer.
func NewFixer() *Fixer {
	return &Fixer{}
}

// Fix parses htmlContent, applies every rule once and renders the document.
func (f *Fixer) Fix(htmlContent string) (*doxfix.FixResult, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return nil, doxfix.Errorf(doxfix.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, doxfix.Errorf(doxfix.EINVALID, "failed to parse HTML: %v", err)
	}

	stats := f.FixDocument(doc)

	out, err := doc.Html()
	if err != nil {
		return nil, doxfix.Errorf(doxfix.EINTERNAL, "failed to render HTML: %v", err)
	}

	return &doxfix.FixResult{HTML: out, Stats: stats}, nil
}

// FixDocument applies the rules to an already parsed document, in order:
// operator spacing in links, template parameter cells, member item text
// nodes, then the class index wrapper.
//
// The class index is wrapped every time, so calling FixDocument twice on the
// same document nests two wrappers.
func (f *Fixer) FixDocument(doc *goquery.Document) doxfix.FixStats {
	var stats doxfix.FixStats
	stats.Links = fixLinks(doc)
	stats.TemplateParams = fixTemplateParams(doc)
	stats.MemberTexts = fixMemberItems(doc)
	stats.ClassIndexes = wrapClassIndex(doc)
	return stats
}

// fixLinks rewrites the text of anchors containing "operator &".
// A changed anchor's content is replaced by a single text node.
func fixLinks(doc *goquery.Document) int {
	changed := 0
	doc.Find(LinkSelector).Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		fixed := doxfix.FixOperatorSpacing(text)
		if fixed == text {
			return
		}
		sel.SetText(fixed)
		changed++
	})
	return changed
}

// fixTemplateParams rewrites template parameter cells as plain text.
// Cells whose text is already normalized keep their markup.
func fixTemplateParams(doc *goquery.Document) int {
	changed := 0
	doc.Find(TemplateParamSelector).Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		fixed := doxfix.FixTemplateParams(text)
		if fixed == text {
			return
		}
		sel.SetText(fixed)
		changed++
	})
	return changed
}

// fixMemberItems rewrites only the direct text children of member cells.
// Nested elements such as links keep their own text.
func fixMemberItems(doc *goquery.Document) int {
	changed := 0
	doc.Find(MemberItemSelector).Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.TextNode {
					continue
				}
				fixed := doxfix.FixMemberSignature(c.Data)
				if fixed == c.Data {
					continue
				}
				c.Data = fixed
				changed++
			}
		}
	})
	return changed
}

func wrapClassIndex(doc *goquery.Document) int {
	sel := doc.Find(ClassIndexSelector)
	if sel.Length() == 0 {
		return 0
	}
	sel.WrapHtml(ClassIndexWrapper)
	return sel.Length()
}
