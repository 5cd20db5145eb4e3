package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/doxfix"
)

var _ doxfix.GeneratorDetector = (*Detector)(nil)

// Detector identifies Doxygen pages from HTML content.
// It checks the meta generator tag first and falls back to structural
// markers that only Doxygen's HTML output produces.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified generator.
// Returns GeneratorUnknown if the generator cannot be determined.
func (d *Detector) Detect(html string) doxfix.Generator {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return doxfix.GeneratorUnknown
	}

	if generator := metaGenerator(doc); generator != "" {
		if strings.HasPrefix(generator, "doxygen") {
			return doxfix.GeneratorDoxygen
		}
		return doxfix.GeneratorUnknown
	}

	// Structural markers for pages whose head was customized
	if d.hasSelector(doc, "#doc-content") ||
		d.hasSelector(doc, "div.memitem") ||
		d.hasSelector(doc, "table.memberdecls") ||
		d.hasSelector(doc, ClassIndexSelector) ||
		d.hasSelector(doc, "#titlearea") && d.hasSelector(doc, ".headertitle") {
		return doxfix.GeneratorDoxygen
	}

	return doxfix.GeneratorUnknown
}

// Version returns the Doxygen version from the meta generator tag,
// or an empty string if the page has none.
func (d *Detector) Version(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	generator := metaGenerator(doc)
	version, ok := strings.CutPrefix(generator, "doxygen")
	if !ok {
		return ""
	}
	return strings.TrimSpace(version)
}

// metaGenerator returns the lowercased content of the last meta generator tag.
func metaGenerator(doc *goquery.Document) string {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(strings.TrimSpace(content))
		}
	})
	return generator
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
