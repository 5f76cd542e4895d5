package tables

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/scanlayout/model"
)

// currencyPattern matches amounts written with thin-space thousand groups
// and an optional comma decimal part, e.g. "2 000,00" or "15 250".
var currencyPattern = regexp.MustCompile(`\b\d{1,3}(?: \d{3})*(?:,\d{1,2})?\b`)

// minCurrencyMagnitude filters out incidental small numbers (quantities,
// ordinals) that match the amount pattern.
const minCurrencyMagnitude = 100

var (
	debitKeywords  = []string{"дебет", "дебит", "debit"}
	creditKeywords = []string{"кредит", "credit"}

	keywordFolder = cases.Fold()
)

// FinancialColumns is the per-table record of which grid columns carry
// monetary amounts. It is computed once per table and passed into row
// processing; it is never stored globally.
type FinancialColumns struct {
	Debit  []int
	Credit []int
}

// All returns the union of debit and credit column indices.
func (fc FinancialColumns) All() []int {
	out := make([]int, 0, len(fc.Debit)+len(fc.Credit))
	out = append(out, fc.Debit...)
	out = append(out, fc.Credit...)
	return out
}

// contains reports whether col is one of the financial columns.
func (fc FinancialColumns) contains(col int) bool {
	for _, c := range fc.All() {
		if c == col {
			return true
		}
	}
	return false
}

// DetectFinancialColumns determines the debit and credit columns of a
// table. Preference order: header keywords, then the two columns whose
// cells hold the most currency-patterned values (lower index = debit),
// then the table's last two grid columns.
func DetectFinancialColumns(cells []*model.Cell) FinancialColumns {
	var fc FinancialColumns

	// First pass: headers. OCR output mixes cases and scripts, so keyword
	// matching runs over case-folded text.
	for _, cell := range cells {
		folded := keywordFolder.String(cell.Text)
		switch {
		case containsAny(folded, debitKeywords):
			fc.Debit = appendUnique(fc.Debit, cell.Col)
		case containsAny(folded, creditKeywords):
			fc.Credit = appendUnique(fc.Credit, cell.Col)
		}
	}
	if len(fc.Debit) > 0 || len(fc.Credit) > 0 {
		return fc
	}

	// Second pass: content. Count currency values per column and take the
	// two busiest columns.
	counts := make(map[int]int)
	for _, cell := range cells {
		if n := len(ExtractCurrencyValues(cell.Text)); n > 0 {
			counts[cell.Col] += n
		}
	}
	if len(counts) >= 2 {
		cols := make([]int, 0, len(counts))
		for col := range counts {
			cols = append(cols, col)
		}
		sort.Slice(cols, func(i, j int) bool {
			if counts[cols[i]] != counts[cols[j]] {
				return counts[cols[i]] > counts[cols[j]]
			}
			return cols[i] < cols[j]
		})
		first, second := cols[0], cols[1]
		if first > second {
			first, second = second, first
		}
		fc.Debit = []int{first}
		fc.Credit = []int{second}
		return fc
	}

	// Fallback: the last two grid columns.
	maxCol := -1
	for _, cell := range cells {
		if cell.Col > maxCol {
			maxCol = cell.Col
		}
	}
	if maxCol >= 1 {
		fc.Debit = []int{maxCol - 1}
		fc.Credit = []int{maxCol}
	}
	return fc
}

// ExtractCurrencyValues returns the currency-patterned substrings of text
// whose numeric magnitude is at least minCurrencyMagnitude.
func ExtractCurrencyValues(text string) []string {
	var values []string
	for _, m := range currencyPattern.FindAllString(text, -1) {
		normalized := strings.ReplaceAll(m, " ", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
		v, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			continue
		}
		if v >= minCurrencyMagnitude {
			values = append(values, m)
		}
	}
	return values
}

// ContainsCurrencyValue reports whether text holds at least one qualifying
// currency value.
func ContainsCurrencyValue(text string) bool {
	return len(ExtractCurrencyValues(text)) > 0
}

func containsAny(folded string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(folded, k) {
			return true
		}
	}
	return false
}

func appendUnique(cols []int, col int) []int {
	for _, c := range cols {
		if c == col {
			return cols
		}
	}
	return append(cols, col)
}
