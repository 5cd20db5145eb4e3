package mock

import "github.com/fwojciec/doxfix"

var (
	_ doxfix.Fixer             = (*Fixer)(nil)
	_ doxfix.GeneratorDetector = (*GeneratorDetector)(nil)
)

// Fixer is a mock implementation of doxfix.Fixer.
type Fixer struct {
	FixFn func(html string) (*doxfix.FixResult, error)
}

func (f *Fixer) Fix(html string) (*doxfix.FixResult, error) {
	return f.FixFn(html)
}

// GeneratorDetector is a mock implementation of doxfix.GeneratorDetector.
type GeneratorDetector struct {
	DetectFn func(html string) doxfix.Generator
}

func (d *GeneratorDetector) Detect(html string) doxfix.Generator {
	return d.DetectFn(html)
}
