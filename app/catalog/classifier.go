package catalog

import (
	"regexp"
)

type rule[T ~string] struct {
	pattern *regexp.Regexp
	value   T
}

func newRule[T ~string](pattern string, value T) rule[T] {
	return rule[T]{
		pattern: regexp.MustCompile(`(?i)` + pattern),
		value:   value,
	}
}

// Rule order matters: the first matching rule wins.
var (
	categoryRules = []rule[Category]{
		newRule(`ring`, CategoryRings),
		newRule(`pendant|necklace`, CategoryNecklaces),
		newRule(`earring|stud`, CategoryEarrings),
		newRule(`bracelet`, CategoryBracelets),
	}

	stoneTypeRules = []rule[StoneType]{
		newRule(`black opal`, StoneBlackOpal),
		newRule(`boulder`, StoneBoulderOpal),
		newRule(`crystal`, StoneCrystalOpal),
		newRule(`doublet`, StoneDoublet),
	}

	originRules = []rule[Origin]{
		newRule(`lightning ridge`, OriginLightningRidge),
		newRule(`coober pedy`, OriginCooberPedy),
		newRule(`queensland`, OriginQueensland),
		newRule(`mintabie`, OriginMintabie),
		newRule(`andamooka`, OriginAndamooka),
	}
)

type Classification struct {
	Category  Category
	StoneType StoneType
	Origin    Origin
}

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Run classifies a product. Category looks at the title only; stone type and
// origin look at the title directly followed by the description.
func (c *Classifier) Run(title, description string) Classification {
	text := title + description

	return Classification{
		Category:  match(categoryRules, title, CategoryRawOpals),
		StoneType: match(stoneTypeRules, text, StoneWhiteOpal),
		Origin:    match(originRules, text, OriginAustralia),
	}
}

func match[T ~string](rules []rule[T], text string, fallback T) T {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.value
		}
	}
	return fallback
}
