package doxfix

// FixStats counts the changes made by each rule of a fix pass.
type FixStats struct {
	// Links is the number of anchors whose operator spacing was fixed.
	Links int

	// TemplateParams is the number of template parameter cells rewritten.
	TemplateParams int

	// MemberTexts is the number of member item text nodes rewritten.
	MemberTexts int

	// ClassIndexes is the number of class index tables wrapped.
	ClassIndexes int
}

// Total returns the number of changes across all rules.
func (s FixStats) Total() int {
	return s.Links + s.TemplateParams + s.MemberTexts + s.ClassIndexes
}

// Add returns the element-wise sum of s and o.
func (s FixStats) Add(o FixStats) FixStats {
	return FixStats{
		Links:          s.Links + o.Links,
		TemplateParams: s.TemplateParams + o.TemplateParams,
		MemberTexts:    s.MemberTexts + o.MemberTexts,
		ClassIndexes:   s.ClassIndexes + o.ClassIndexes,
	}
}

// FixResult holds a rewritten page.
type FixResult struct {
	HTML  string
	Stats FixStats
}

// Fixer applies the documentation fixes to a rendered page.
type Fixer interface {
	// Fix parses html, applies every rule once and returns the rendered result.
	// Returns EINVALID for empty or unparseable input.
	Fix(html string) (*FixResult, error)
}

// Generator identifies the tool that produced a page.
type Generator string

// Generator constants.
const (
	GeneratorUnknown Generator = ""
	GeneratorDoxygen Generator = "doxygen"
)

// GeneratorDetector identifies the generator of a page from its HTML.
type GeneratorDetector interface {
	Detect(html string) Generator
}
