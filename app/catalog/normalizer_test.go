package catalog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(title, description, price string) RawRow {
	return RawRow{
		Title:        title,
		Description:  description,
		Price:        price,
		Availability: "in stock",
	}
}

func TestNormalizerClassifiesDescription(t *testing.T) {
	n := NewNormalizer(DefaultSettings())
	result := n.Run([]RawRow{
		row("Stunning Pendant", "Beautiful 3.5 ct black opal from Lightning Ridge", "1200 AUD"),
	})

	require.Len(t, result.Products, 1)
	p := result.Products[0]
	assert.Equal(t, StoneBlackOpal, p.StoneType)
	assert.Equal(t, OriginLightningRidge, p.Origin)
	require.True(t, p.Weight.Valid)
	assert.Equal(t, "3.5", p.Weight.Decimal.String())
	assert.Equal(t, CategoryNecklaces, p.Category)
}

func TestNormalizerDefaults(t *testing.T) {
	n := NewNormalizer(DefaultSettings())
	result := n.Run([]RawRow{
		row("Opal Ring — Size 7", "Hand made in sterling silver", "250 AUD"),
	})

	require.Len(t, result.Products, 1)
	p := result.Products[0]
	assert.Equal(t, CategoryRings, p.Category)
	assert.Equal(t, StoneWhiteOpal, p.StoneType)
	assert.Equal(t, OriginAustralia, p.Origin)
	assert.False(t, p.Weight.Valid)
	assert.Equal(t, "opal-ring-size-7", p.Slug)
	assert.Empty(t, p.ImageFilename)
}

func TestNormalizerRejectsRows(t *testing.T) {
	tests := []struct {
		name   string
		row    RawRow
		reason SkipReason
	}{
		{"empty title", row("   ", "desc", "10"), SkipInvalidTitle},
		{"short title", row("abcd", "desc", "10"), SkipInvalidTitle},
		{"missing price", row("Opal Ring", "desc", "  "), SkipMissingPrice},
		{"zero price", row("Opal Ring", "desc", "0"), SkipInvalidPrice},
		{"negative price", row("Opal Ring", "desc", "-15.00 AUD"), SkipInvalidPrice},
		{"unparseable price", row("Opal Ring", "desc", "call us"), SkipInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(DefaultSettings())
			product, reason := n.normalizeRow(tt.row)
			assert.Equal(t, tt.reason, reason)
			assert.Empty(t, product.ID)
		})
	}
}

func TestNormalizerAcceptsFiveCharacterTitle(t *testing.T) {
	n := NewNormalizer(DefaultSettings())
	result := n.Run([]RawRow{row("abcde", "", "10")})

	require.Len(t, result.Products, 1)
	assert.Equal(t, "abcde", result.Products[0].Title)
}

func TestNormalizerPrice(t *testing.T) {
	n := NewNormalizer(DefaultSettings())
	result := n.Run([]RawRow{
		row("Opal Ring One", "", "1,899.00 AUD"),
		row("Opal Ring Two", "", " 1899.50 AUD "),
		row("Opal Ring Three", "", "AUD 42"),
	})

	assert.Equal(t, 1, result.Stats.InvalidPrice)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "1899.5", result.Products[0].Price.String())
	assert.Equal(t, "42", result.Products[1].Price.String())
}

func TestNormalizerDuplicateSlugs(t *testing.T) {
	n := NewNormalizer(DefaultSettings())
	result := n.Run([]RawRow{
		row("Black Opal Ring", "first", "100"),
		row("Black Opal Ring II", "second design", "100"),
		row("black opal ring", "second", "200"),
		row("Crystal Opal Studs", "", "80"),
	})

	assert.Equal(t, 4, result.Stats.Read)
	assert.Equal(t, 3, result.Stats.Accepted)
	assert.Equal(t, 1, result.Stats.DuplicateSlug)
	assert.Equal(t, 1, result.Stats.Skipped())

	require.Len(t, result.Products, 3)
	assert.Equal(t, "first", result.Products[0].Description)
	assert.Equal(t, []string{"1", "2", "3"}, ids(result.Products))
}

func TestNormalizerSlugsCarryAcrossRuns(t *testing.T) {
	n := NewNormalizer(DefaultSettings())
	first := n.Run([]RawRow{row("Boulder Opal Pendant", "", "300")})
	second := n.Run([]RawRow{
		row("Boulder Opal Pendant", "", "300"),
		row("Boulder Opal Earrings", "", "150"),
	})

	require.Len(t, first.Products, 1)
	require.Len(t, second.Products, 1)
	assert.Equal(t, 1, second.Stats.DuplicateSlug)
	assert.Equal(t, "2", second.Products[0].ID)
}

func TestNormalizerIDsSkipRejectedRows(t *testing.T) {
	n := NewNormalizer(DefaultSettings())
	result := n.Run([]RawRow{
		row("abc", "", "10"),
		row("Opal Bracelet", "", "10"),
		row("Opal Necklace", "", "0"),
		row("Opal Earrings", "", "10"),
	})

	assert.Equal(t, []string{"1", "2"}, ids(result.Products))
}

func TestNormalizerFeatured(t *testing.T) {
	settings := DefaultSettings()
	settings.FeaturedCount = 2

	rows := make([]RawRow, 0, 4)
	for _, title := range []string{"Opal One", "Opal Two", "Opal Three", "Opal Four"} {
		rows = append(rows, row(title, "", "10"))
	}

	result := NewNormalizer(settings).Run(rows)

	require.Len(t, result.Products, 4)
	featured := make([]bool, 0, 4)
	for _, p := range result.Products {
		featured = append(featured, p.Featured)
	}
	assert.Equal(t, []bool{true, true, false, false}, featured)
}

func TestNormalizerStock(t *testing.T) {
	rows := []RawRow{
		{Title: "Opal One", Price: "10", Availability: "in stock"},
		{Title: "Opal Two", Price: "10", Availability: " in stock "},
		{Title: "Opal Three", Price: "10", Availability: "In Stock"},
		{Title: "Opal Four", Price: "10", Availability: "out of stock"},
		{Title: "Opal Five", Price: "10"},
	}

	result := NewNormalizer(DefaultSettings()).Run(rows)

	require.Len(t, result.Products, 5)
	stock := make([]int, 0, 5)
	for _, p := range result.Products {
		stock = append(stock, p.Stock)
	}
	assert.Equal(t, []int{1, 1, 0, 0, 0}, stock)
}

func TestNormalizerDescription(t *testing.T) {
	long := "<p>" + strings.Repeat("é", 400) + "</p>"
	result := NewNormalizer(DefaultSettings()).Run([]RawRow{
		row("Opal Ring Tagged", "<p>Solid <b>opal</b> &lt;3&gt; &amp; more</p>", "10"),
		row("Opal Ring Long", long, "10"),
		row("Opal Ring Weighted", strings.Repeat("x", 320)+" total 2 cts", "10"),
	})

	require.Len(t, result.Products, 3)
	assert.Equal(t, "Solid opal <3> &amp; more", result.Products[0].Description)
	assert.Equal(t, 300, utf8.RuneCountInString(result.Products[1].Description))

	weighted := result.Products[2]
	assert.LessOrEqual(t, utf8.RuneCountInString(weighted.Description), 300)
	require.True(t, weighted.Weight.Valid)
	assert.Equal(t, "2", weighted.Weight.Decimal.String())
}

func TestNormalizerImageFilename(t *testing.T) {
	rows := []RawRow{
		{Title: "Opal One", Price: "10", ImageURL: "https://shop.example.com/wp-content/uploads/2023/05/ring-1.jpg"},
		{Title: "Opal Two", Price: "10", ImageURL: "https://cdn.example.com/img/pendant.png?width=800"},
		{Title: "Opal Three", Price: "10", ImageURL: "  "},
	}

	result := NewNormalizer(DefaultSettings()).Run(rows)

	require.Len(t, result.Products, 3)
	assert.Equal(t, "ring-1.jpg", result.Products[0].ImageFilename)
	assert.Equal(t, "pendant.png", result.Products[1].ImageFilename)
	assert.Empty(t, result.Products[2].ImageFilename)
	assert.Empty(t, result.Products[2].ImageURL)
}

func TestNormalizerIdempotent(t *testing.T) {
	rows := []RawRow{
		row("Black Opal Ring", "3 ct from Lightning Ridge", "100"),
		row("abcd", "", "100"),
		row("Boulder Opal Pendant", "Queensland boulder", "250"),
		row("Black Opal Ring", "again", "100"),
	}

	first := NewNormalizer(DefaultSettings()).Run(rows)
	second := NewNormalizer(DefaultSettings()).Run(rows)

	assert.Equal(t, first, second)
}

func TestNormalizerInvariants(t *testing.T) {
	rows := []RawRow{
		row("Opal Ring", strings.Repeat("long ", 200), "10"),
		row("Opal Ring", "duplicate", "20"),
		row("Opal Ring 2", "", "0.01"),
		row("Opal Ring 3", "", "-1"),
		row("Opal Ring 4", "", "1e3"),
	}

	result := NewNormalizer(DefaultSettings()).Run(rows)

	slugs := make(map[string]bool)
	seenIDs := make(map[string]bool)
	for _, p := range result.Products {
		assert.True(t, p.Price.IsPositive(), "price of %s", p.Slug)
		assert.LessOrEqual(t, utf8.RuneCountInString(p.Description), 300)
		assert.LessOrEqual(t, len(p.Slug), 60)
		assert.False(t, slugs[p.Slug], "duplicate slug %s", p.Slug)
		assert.False(t, seenIDs[p.ID], "duplicate id %s", p.ID)
		slugs[p.Slug] = true
		seenIDs[p.ID] = true
	}
	assert.Equal(t, result.Stats.Read, result.Stats.Accepted+result.Stats.Skipped())
}

func TestExtractWeight(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"Solid opal, 12.75ct", "12.75"},
		{"about 4 CTS total", "4"},
		{"Weighs 3. ct", "3"},
		{"Solid opal 3.5\u00a0ct", "3.5"},
		{"no weight here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			weight := extractWeight(tt.description)
			if tt.want == "" {
				assert.False(t, weight.Valid)
				return
			}
			require.True(t, weight.Valid)
			assert.Equal(t, tt.want, weight.Decimal.String())
		})
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
