// Package slug derives the public identifier of a submission.
//
// A slug is built from a name source (or a user supplied candidate), reduced to
// lowercase ASCII letters and digits, and made unique across every submission
// table by appending an increasing counter with no separator:
//
//	janedoe, janedoe1, janedoe2, ...
//
// The resolver never fails on its own; errors only come from the Checker.
package slug

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// MinCustomLength is the shortest cleaned custom slug that is accepted.
const MinCustomLength = 3

// Request carries everything needed to derive a base token.
type Request struct {
	// Name is the preferred name source, already concatenated without separator.
	Name string
	// Custom is the optional user supplied candidate.
	Custom string
	// Default replaces an empty base token ("campaign", "organization").
	Default string
	// ExcludeID is the primary key of the record being saved, ignored when checking
	// for conflicts. Empty for records that have not been inserted yet.
	ExcludeID string
}

// Checker reports whether a candidate slug is already used by another record.
type Checker interface {
	SlugTaken(ctx context.Context, candidate, excludeID string) (bool, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, candidate, excludeID string) (bool, error)

func (f CheckerFunc) SlugTaken(ctx context.Context, candidate, excludeID string) (bool, error) {
	return f(ctx, candidate, excludeID)
}

// Clean lowercases s and drops everything that is not an ASCII letter or digit.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// BaseToken returns the token the counter loop starts from.
func BaseToken(req Request) string {
	base := Clean(req.Name)

	if custom := Clean(req.Custom); len(custom) >= MinCustomLength {
		base = custom
	}

	if base == "" {
		base = Clean(req.Default)
	}
	return base
}

// Candidate returns the n-th candidate for base; n == 0 is the base itself.
func Candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + strconv.Itoa(n)
}

// Resolve finds the first candidate not taken according to checker.
func Resolve(ctx context.Context, checker Checker, req Request) (string, error) {
	base := BaseToken(req)

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := Candidate(base, n)
		taken, err := checker.SlugTaken(ctx, candidate, req.ExcludeID)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
}

// TemplateURL builds {basePath}/{slug}/{template}.
func TemplateURL(basePath, slug, template string) string {
	return strings.TrimRight(basePath, "/") + "/" + slug + "/" + template
}

// TemplateURLs builds one URL per template name.
func TemplateURLs(basePath, slug string, templates []string) map[string]string {
	urls := make(map[string]string, len(templates))
	for _, t := range templates {
		urls[t] = TemplateURL(basePath, slug, t)
	}
	return urls
}
