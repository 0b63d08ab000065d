package catalog

import (
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	weightPattern  = regexp.MustCompile(`(?i)(\d+\.?\d*)[\s\p{Zs}]*(ct|cts)`)
	entityReplacer = strings.NewReplacer("&lt;", "<", "&gt;", ">")
)

// Normalizer turns raw catalog rows into products. Ids and the seen-slug set
// carry over between Run calls, so several files fed to the same Normalizer
// are numbered and deduplicated as one catalog.
type Normalizer struct {
	settings   Settings
	classifier *Classifier
	seenSlugs  map[string]struct{}
	lastID     int
}

func NewNormalizer(settings Settings) *Normalizer {
	return &Normalizer{
		settings:   settings,
		classifier: NewClassifier(),
		seenSlugs:  make(map[string]struct{}),
	}
}

func (n *Normalizer) Run(rows []RawRow) Result {
	result := Result{
		Products: make([]Product, 0, len(rows)),
	}

	for i, row := range rows {
		result.Stats.Read++

		product, reason := n.normalizeRow(row)
		if reason != "" {
			result.Stats.skip(reason)
			slog.Debug("Row skipped", "row", i+1, "reason", reason, "title", strings.TrimSpace(row.Title))
			continue
		}

		result.Products = append(result.Products, product)
		result.Stats.Accepted++
	}

	return result
}

func (n *Normalizer) normalizeRow(row RawRow) (Product, SkipReason) {
	title := strings.TrimSpace(row.Title)
	description := strings.TrimSpace(row.Description)
	priceText := strings.TrimSpace(row.Price)
	imageURL := strings.TrimSpace(row.ImageURL)
	availability := strings.TrimSpace(row.Availability)

	if title == "" || utf8.RuneCountInString(title) < n.settings.MinTitleLength {
		return Product{}, SkipInvalidTitle
	}
	if priceText == "" {
		return Product{}, SkipMissingPrice
	}

	price, ok := n.parsePrice(priceText)
	if !ok {
		return Product{}, SkipInvalidPrice
	}

	description = stripTags(description)

	slug := Slugify(title, n.settings.SlugLimit)
	if _, seen := n.seenSlugs[slug]; seen {
		return Product{}, SkipDuplicateSlug
	}
	n.seenSlugs[slug] = struct{}{}

	classification := n.classifier.Run(title, description)

	n.lastID++
	stock := 0
	if availability == n.settings.InStock {
		stock = 1
	}

	return Product{
		ID:            strconv.Itoa(n.lastID),
		Title:         title,
		Slug:          slug,
		Description:   strings.TrimSpace(truncate(description, n.settings.DescriptionLimit)),
		Price:         price,
		ImageURL:      imageURL,
		ImageFilename: imageFilename(imageURL),
		Category:      classification.Category,
		StoneType:     classification.StoneType,
		Origin:        classification.Origin,
		Weight:        extractWeight(description),
		Stock:         stock,
		Featured:      n.lastID <= n.settings.FeaturedCount,
	}, ""
}

func (n *Normalizer) parsePrice(text string) (decimal.Decimal, bool) {
	if n.settings.Currency != "" {
		text = strings.ReplaceAll(text, n.settings.Currency, "")
	}
	text = strings.TrimSpace(text)

	price, err := decimal.NewFromString(text)
	if err != nil || !price.IsPositive() {
		return decimal.Decimal{}, false
	}
	return price, true
}

// stripTags removes anything shaped like a tag and decodes &lt; and &gt;.
// Other entities are left as they are.
func stripTags(description string) string {
	description = htmlTagPattern.ReplaceAllString(description, "")
	return entityReplacer.Replace(description)
}

func extractWeight(description string) decimal.NullDecimal {
	m := weightPattern.FindStringSubmatch(description)
	if m == nil {
		return decimal.NullDecimal{}
	}

	weight, err := decimal.NewFromString(strings.TrimSuffix(m[1], "."))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: weight, Valid: true}
}

// imageFilename returns the last segment of the URL path, or "" when there
// is no usable URL.
func imageFilename(imageURL string) string {
	if imageURL == "" {
		return ""
	}

	p := imageURL
	if u, err := url.Parse(imageURL); err == nil {
		p = u.Path
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// truncate cuts s to at most limit characters (runes).
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
