package catalog

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	slugStripPattern = regexp.MustCompile(`[^a-z0-9\s\p{Zs}-]`)
	slugSpacePattern = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// Slugify lower-cases the title, drops everything except ASCII letters, digits,
// whitespace and hyphens, turns whitespace runs into a hyphen and cuts the
// result to limit characters. A limit <= 0 disables the cut.
func Slugify(title string, limit int) string {
	slug := cases.Lower(language.Und).String(title)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugSpacePattern.ReplaceAllString(slug, "-")

	// Only ASCII is left at this point, so byte length equals character count.
	if limit > 0 && len(slug) > limit {
		slug = slug[:limit]
	}
	return slug
}
