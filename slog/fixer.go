// Package slog provides logging decorators for doxfix services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/doxfix"
)

// Ensure LoggingFixer implements doxfix.Fixer.
var _ doxfix.Fixer = (*LoggingFixer)(nil)

// LoggingFixer wraps a Fixer with debug logging of rule statistics.
type LoggingFixer struct {
	next   doxfix.Fixer
	logger *slog.Logger
}

// NewLoggingFixer creates a new LoggingFixer.
func NewLoggingFixer(next doxfix.Fixer, logger *slog.Logger) *LoggingFixer {
	return &LoggingFixer{next: next, logger: logger}
}

// Fix delegates to the wrapped fixer and logs what each rule changed.
func (f *LoggingFixer) Fix(html string) (result *doxfix.FixResult, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Error("fix",
				"bytes", len(html),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Debug("fix",
			"links", result.Stats.Links,
			"templates", result.Stats.TemplateParams,
			"members", result.Stats.MemberTexts,
			"classindexes", result.Stats.ClassIndexes,
			"bytes", len(html),
			"duration", time.Since(begin),
		)
	}(time.Now())

	return f.next.Fix(html)
}
