package goquery

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/pagesift"
)

// Patterns holds the compiled expressions behind the text probes. Each
// expression exposes its result through a named capture group.
type Patterns struct {
	// Price captures "price": a currency symbol followed by an amount.
	Price *regexp.Regexp

	// Quantity captures "quantity": a number followed by a known unit.
	Quantity *regexp.Regexp

	// Brand, Author and Date find labelled values.
	Brand  Label
	Author Label
	Date   Label

	// DateSignal matches publication phrases in free text.
	DateSignal *regexp.Regexp
}

// NewPatterns compiles the probe expressions for the given tables.
func NewPatterns(t *pagesift.Tables) (*Patterns, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	labels := slices.Concat(t.BrandLabels, t.AuthorLabels, t.DateLabels)
	exprs := map[string]string{
		"price":      `(?P<price>(?:` + alternation(t.CurrencySymbols, true) + `)\s?\d+(?:[,.]\d{3})*(?:[.,]\d{1,2})?)`,
		"quantity":   `(?i)\b(?P<quantity>\d+(?:[.,]\d+)?\s?(?:` + alternation(t.QuantityUnits, false) + `)s?)\b`,
		"brand":      labelExpr(t.BrandLabels, labels),
		"author":     labelExpr(t.AuthorLabels, labels),
		"date":       labelExpr(t.DateLabels, labels),
		"brandBare":  bareLabelExpr(t.BrandLabels),
		"authorBare": bareLabelExpr(t.AuthorLabels),
		"dateBare":   bareLabelExpr(t.DateLabels),
		"signal":     `(?i)(?:` + alternation(t.DateSignals, true) + `)`,
	}

	compiled := make(map[string]*regexp.Regexp, len(exprs))
	for name, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, pagesift.Errorf(pagesift.EINVALID, "invalid %s pattern: %v", name, err)
		}
		compiled[name] = re
	}

	return &Patterns{
		Price:      compiled["price"],
		Quantity:   compiled["quantity"],
		Brand:      Label{Value: compiled["brand"], Bare: compiled["brandBare"]},
		Author:     Label{Value: compiled["author"], Bare: compiled["authorBare"]},
		Date:       Label{Value: compiled["date"], Bare: compiled["dateBare"]},
		DateSignal: compiled["signal"],
	}, nil
}

// Label matches a labelled value such as "Brand: Acme".
type Label struct {
	// Value captures "value": the text following the label.
	Value *regexp.Regexp

	// Bare matches text that consists of the label alone, whose value is
	// then found in the adjacent element.
	Bare *regexp.Regexp
}

// bareLabelExpr matches a label with nothing but punctuation after it.
func bareLabelExpr(labels []string) string {
	return `(?i)^(?:` + alternation(labels, true) + `)\b\s*[:\-–—]?$`
}

// labelExpr matches one of labels followed by its value. The value ends at
// a separator character or at the start of any other known label.
func labelExpr(labels, all []string) string {
	return `(?i)(?:^|[^\p{L}\p{N}])(?:` + alternation(labels, true) + `)\b\s*[:\-–—]?\s*` +
		`(?P<value>[\p{L}\p{N}][^|•·]*?)\s*(?:[|•·]|\s(?:` + alternation(all, true) + `)\b|$)`
}

// alternation quotes words and joins them longest first, so that "Rs."
// wins over "Rs". With anchor set, words starting with a letter must start
// at a word boundary.
func alternation(words []string, anchor bool) string {
	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	parts := make([]string, 0, len(sorted))
	for _, w := range sorted {
		if w == "" {
			continue
		}
		q := regexp.QuoteMeta(w)
		if r, _ := utf8.DecodeRuneInString(w); anchor && unicode.IsLetter(r) {
			q = `\b` + q
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, "|")
}

// submatch returns the trimmed named group of the first match of re in s.
func submatch(re *regexp.Regexp, s, group string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	i := re.SubexpIndex(group)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(m[i])
}

// FindPrice returns the first currency amount in s, or "".
func (p *Patterns) FindPrice(s string) string {
	return cleanText(submatch(p.Price, s, "price"))
}

// FindQuantity returns the first number-and-unit quantity in s, or "".
func (p *Patterns) FindQuantity(s string) string {
	return cleanText(submatch(p.Quantity, s, "quantity"))
}

// Find returns the value following the label in s, or "".
func (l Label) Find(s string) string {
	return strings.TrimRight(submatch(l.Value, s, "value"), " ,;:-")
}
