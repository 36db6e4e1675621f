package domain

import (
	"strings"
	"unicode"
)

// naTokens are cell values spreadsheet exports use for "no value".
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// CatalogBuilder accumulates categories across files. Category and value
// order follows first appearance.
type CatalogBuilder struct {
	values map[string][]string
	seen   map[string]map[string]struct{}
}

func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{
		values: make(map[string][]string),
		seen:   make(map[string]map[string]struct{}),
	}
}

// NewFile starts a file. The current category never carries over from a
// previous file, so value rows before the first label are dropped.
func (b *CatalogBuilder) NewFile() *FileCursor {
	return &FileCursor{b: b}
}

// Build returns the catalog, leaving out categories that never got a value.
func (b *CatalogBuilder) Build() Catalog {
	return NewCatalog(b.values)
}

func (b *CatalogBuilder) ensure(category string) {
	if _, ok := b.values[category]; ok {
		return
	}
	b.values[category] = []string{}
	b.seen[category] = make(map[string]struct{})
}

func (b *CatalogBuilder) add(category, value string) {
	if _, dup := b.seen[category][value]; dup {
		return
	}
	b.seen[category][value] = struct{}{}
	b.values[category] = append(b.values[category], value)
}

// FileCursor feeds the rows of one file into its builder.
type FileCursor struct {
	b       *CatalogBuilder
	current string
}

// Category is the label the next value rows will be filed under.
func (f *FileCursor) Category() string { return f.current }

// AddRow applies one row. Column A holds a category label or, when it is
// numeric, a value; column B holds a value.
func (f *FileCursor) AddRow(row []string) {
	colA := cell(row, 0)
	colB := cell(row, 1)
	aNumeric := IsNumericLabel(colA)

	if colA != "" && !aNumeric {
		f.current = colA
		f.b.ensure(colA)
	}

	candidate := colB
	if candidate == "" && aNumeric {
		candidate = colA
	}
	if f.current == "" || candidate == "" {
		return
	}

	value := strings.TrimSpace(strings.ReplaceAll(candidate, ",", ""))
	if value == "" {
		return
	}
	f.b.add(f.current, value)
}

// IsNumericLabel reports whether s is all digits once every comma and
// hyphen is removed. The empty remainder is not numeric, so "-" and ","
// count as labels while "207-3" and "12,000" do not.
func IsNumericLabel(s string) bool {
	stripped := strings.NewReplacer(",", "", "-", "").Replace(s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	if _, na := naTokens[v]; na {
		return ""
	}
	return v
}
