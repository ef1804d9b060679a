// Package sanitize rewrites page URLs before they leave the host: mask
// patterns generalize path segments for privacy, skip patterns suppress
// tracking entirely, and query strings can be stripped wholesale.
package sanitize

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// Sanitizer applies a frozen set of mask and skip patterns. Build one at
// initialization; it is immutable and safe for concurrent use.
type Sanitizer struct {
	masks       [][]string
	skips       []*regexp.Regexp
	ignoreQuery bool
}

// New compiles the configured patterns. Mask patterns are '/'-delimited
// templates where '*' matches one non-empty segment; skip patterns use the
// same wildcard form and are compiled to anchored regular expressions. A skip
// pattern that fails to compile is logged and dropped rather than failing
// initialization.
func New(maskPatterns, skipPatterns []string, ignoreQuery bool, logger *slog.Logger) *Sanitizer {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Sanitizer{ignoreQuery: ignoreQuery}

	for _, p := range maskPatterns {
		s.masks = append(s.masks, splitSegments(p))
	}

	for _, p := range skipPatterns {
		re, err := compileSkip(p)
		if err != nil {
			logger.Warn("dropping invalid skip pattern",
				slog.String("pattern", p),
				slog.String("error", err.Error()))
			continue
		}
		s.skips = append(s.skips, re)
	}

	return s
}

// Sanitize returns the sanitized form of raw, or ok=false when the URL must
// not be tracked (skip-pattern match or unparseable input). Masking is
// idempotent: sanitizing an already-masked URL with the same patterns yields
// the same result.
func (s *Sanitizer) Sanitize(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if s.skipped(u.Path) {
		return "", false
	}

	if masked, ok := s.maskPath(u.Path); ok {
		u.Path = masked
		u.RawPath = ""
	}

	if s.ignoreQuery {
		u.RawQuery = ""
	}

	return u.String(), true
}

func (s *Sanitizer) skipped(path string) bool {
	trimmed := strings.TrimSuffix(path, "/")
	for _, re := range s.skips {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// maskPath applies the first matching mask pattern. Patterns are evaluated in
// configured order; literal segments must match exactly and '*' matches any
// single non-empty segment. A path whose segment count differs from the
// pattern's never matches and falls through to the next pattern.
func (s *Sanitizer) maskPath(path string) (string, bool) {
	segs := splitSegments(path)
	for _, mask := range s.masks {
		if matchSegments(mask, segs) {
			return "/" + strings.Join(mask, "/"), true
		}
	}
	return path, false
}

func matchSegments(mask, segs []string) bool {
	if len(segs) != len(mask) {
		return false
	}
	for i, m := range mask {
		if m == "*" {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if segs[i] != m {
			return false
		}
	}
	return true
}

// splitSegments normalizes a path or pattern to its '/'-delimited segments,
// stripping one leading and one trailing slash.
func splitSegments(p string) []string {
	p = strings.TrimSuffix(p, "/")
	p = strings.TrimPrefix(p, "/")
	return strings.Split(p, "/")
}

// compileSkip translates a wildcard skip pattern to an anchored regexp:
// literal segments are quoted, '*' becomes one non-empty segment.
func compileSkip(pattern string) (*regexp.Regexp, error) {
	segs := splitSegments(pattern)
	quoted := make([]string, len(segs))
	for i, seg := range segs {
		if seg == "*" {
			quoted[i] = "[^/]+"
		} else {
			quoted[i] = regexp.QuoteMeta(seg)
		}
	}
	return regexp.Compile("^/" + strings.Join(quoted, "/") + "$")
}
