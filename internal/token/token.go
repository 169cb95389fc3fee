// Package token derives the ordered candidate search strings used to anchor
// an entry onto a rendered page.
package token

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Narratives of at least minNarrativeWords words are anchored on their
// leading and trailing slices of narrativeSliceLen words, because statements
// frequently truncate or prefix the middle of a narrative.
const (
	minNarrativeWords = 3
	narrativeSliceLen = 4
)

// Extract returns the entry's candidate tokens in match-attempt order:
// reference code, formatted amounts (with and without thousands separators),
// narrative slices, then phone numbers. The matcher tries tokens in this
// order and stops at the first hit, so ordering is part of the contract.
// Empty tokens and exact duplicates are removed, first occurrence wins.
func Extract(entry *model.AnchorableEntry) []string {
	var tokens []string

	if entry.ReferenceCode != "" {
		tokens = append(tokens, entry.ReferenceCode)
	}

	tokens = appendAmountTokens(tokens, entry.Credit)
	tokens = appendAmountTokens(tokens, entry.Debit)
	tokens = appendNarrativeTokens(tokens, entry.Narrative)
	tokens = append(tokens, entry.Phones...)

	return dedupe(tokens)
}

// appendAmountTokens emits both the separator-grouped and the plain form of
// a non-zero amount; the rendered document may contain either.
func appendAmountTokens(tokens []string, amount decimal.Decimal) []string {
	if amount.IsZero() {
		return tokens
	}
	grouped := FormatAmount(amount)
	tokens = append(tokens, grouped)
	return append(tokens, strings.ReplaceAll(grouped, ",", ""))
}

// appendNarrativeTokens emits the leading and trailing word slices of a long
// narrative, or the whole cleaned narrative when it is short.
func appendNarrativeTokens(tokens []string, narrative string) []string {
	words := strings.Fields(narrative)
	if len(words) == 0 {
		return tokens
	}
	if len(words) >= minNarrativeWords {
		lead := words
		if len(lead) > narrativeSliceLen {
			lead = lead[:narrativeSliceLen]
		}
		trail := words
		if len(trail) > narrativeSliceLen {
			trail = trail[len(trail)-narrativeSliceLen:]
		}
		tokens = append(tokens, strings.Join(lead, " "))
		return append(tokens, strings.Join(trail, " "))
	}
	return append(tokens, strings.Join(words, " "))
}

// FormatAmount renders an amount with exactly two decimal digits and comma
// thousands separators, e.g. 12345.6 -> "12,345.60".
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
