// =============================================================================
// PaymentMaker - Russian Amount-in-Words
// =============================================================================
//
// This package renders the document total as a Russian cardinal-number phrase
// ("Четыреста рублей 00 копеек. Без НДС."). The conversion covers integer
// amounts up to the billions, with feminine agreement for the thousands scale
// ("одна тысяча", "две тысячи").
//
// The contract mirrors the totals block of the generated documents: the total
// is truncated to whole rubles, the first letter is capitalized, and a fixed
// "рублей 00 копеек. Без НДС." suffix is appended. If the conversion fails
// (negative or out-of-range totals), the phrase falls back to the numeric
// amount formatted with thousands separators.
//
// =============================================================================

package ruwords

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// amountSuffix is appended to both the word rendering and the numeric
// fallback.
const amountSuffix = " рублей 00 копеек. Без НДС."

// maxAmount bounds the conversion at one trillion; anything above falls back
// to the numeric rendering.
const maxAmount = 1_000_000_000_000

var unitsMasculine = [10]string{
	"", "один", "два", "три", "четыре",
	"пять", "шесть", "семь", "восемь", "девять",
}

// unitsFeminine differs from the masculine row only in "одна"/"две"; it is
// used for the thousands scale.
var unitsFeminine = [10]string{
	"", "одна", "две", "три", "четыре",
	"пять", "шесть", "семь", "восемь", "девять",
}

var teens = [10]string{
	"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать",
	"пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать",
}

var tens = [10]string{
	"", "", "двадцать", "тридцать", "сорок",
	"пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто",
}

var hundreds = [10]string{
	"", "сто", "двести", "триста", "четыреста",
	"пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот",
}

// scales lists the three plural forms for each thousand-group, starting with
// the thousands. The empty scale at index 0 is the units group.
var scales = []struct {
	one, few, many string
	feminine       bool
}{
	{"", "", "", false},
	{"тысяча", "тысячи", "тысяч", true},
	{"миллион", "миллиона", "миллионов", false},
	{"миллиард", "миллиарда", "миллиардов", false},
}

// =============================================================================
// PUBLIC API
// =============================================================================

// AmountInWords renders an exact decimal total as the full document phrase.
// It never fails: conversion errors degrade to the numeric fallback.
func AmountInWords(total decimal.Decimal) string {
	words, err := NumberInWords(total.IntPart())
	if err != nil {
		return FormatMoney(total) + amountSuffix
	}
	return capitalize(words) + amountSuffix
}

// NumberInWords converts a non-negative integer below one trillion into its
// Russian cardinal form.
func NumberInWords(n int64) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("cannot spell negative number %d", n)
	}
	if n >= maxAmount {
		return "", fmt.Errorf("number %d is out of the supported range", n)
	}
	if n == 0 {
		return "ноль", nil
	}

	// Split into thousand-groups, least significant first.
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	// Spell each non-empty group with its scale word, most significant first.
	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		group := groups[i]
		if group == 0 {
			continue
		}

		scale := scales[i]
		parts = append(parts, spellTriad(group, scale.feminine))

		if i > 0 {
			parts = append(parts, pluralForm(group, scale.one, scale.few, scale.many))
		}
	}

	return strings.Join(parts, " "), nil
}

// FormatMoney renders a decimal with comma thousands separators and two
// decimal places ("1,234.50"), matching the numeric strings printed in the
// documents.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + frac
	if negative {
		out = "-" + out
	}
	return out
}

// =============================================================================
// INTERNALS
// =============================================================================

// spellTriad spells a group of up to three digits. The feminine flag selects
// the gender agreement for the final digit.
func spellTriad(n int64, feminine bool) string {
	var words []string

	if h := n / 100; h > 0 {
		words = append(words, hundreds[h])
	}

	rest := n % 100
	switch {
	case rest >= 10 && rest < 20:
		words = append(words, teens[rest-10])
	default:
		if t := rest / 10; t > 0 {
			words = append(words, tens[t])
		}
		if u := rest % 10; u > 0 {
			if feminine {
				words = append(words, unitsFeminine[u])
			} else {
				words = append(words, unitsMasculine[u])
			}
		}
	}

	return strings.Join(words, " ")
}

// pluralForm picks the Russian plural form for a count: 1 → one, 2-4 → few,
// everything else (including 11-14) → many.
func pluralForm(n int64, one, few, many string) string {
	if n%100 >= 11 && n%100 <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

// capitalize upper-cases the first rune of a phrase.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
