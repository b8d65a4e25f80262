package engine

import (
	"fmt"
	"math"
	"strings"
)

// Indian numbering scale: ones, tens, hundred, thousand, lakh (10^5),
// crore (10^7), with each level recursing on its remainder.

var onesWords = []string{
	"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT",
	"NINE", "TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN",
	"SIXTEEN", "SEVENTEEN", "EIGHTEEN", "NINETEEN",
}

var tensWords = []string{
	"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY",
	"EIGHTY", "NINETY",
}

func integerWords(n int64) string {
	switch {
	case n < 20:
		return onesWords[n]
	case n < 100:
		word := tensWords[n/10]
		if n%10 != 0 {
			word += " " + onesWords[n%10]
		}
		return word
	case n < 1000:
		return scaleWords(n, 100, "HUNDRED")
	case n < 100000:
		return scaleWords(n, 1000, "THOUSAND")
	case n < 10000000:
		return scaleWords(n, 100000, "LAKH")
	default:
		return scaleWords(n, 10000000, "CRORE")
	}
}

func scaleWords(n, scale int64, name string) string {
	word := integerWords(n/scale) + " " + name
	if n%scale != 0 {
		word += " " + integerWords(n%scale)
	}
	return word
}

// AmountInWords converts a monetary amount to English words on the Indian
// scale, with the paise rendered as "AND NN/100". Zero, negative and
// non-finite inputs all come back as "ZERO".
func AmountInWords(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return "ZERO"
	}

	whole := int64(amount)
	fraction := int(math.Round((amount - float64(whole)) * 100))
	if fraction >= 100 {
		// rounding pushed the paise over a rupee
		whole++
		fraction -= 100
	}

	words := integerWords(whole)
	if words == "" {
		words = "ZERO"
	}
	if fraction > 0 {
		words += fmt.Sprintf(" AND %02d/100", fraction)
	}

	return strings.TrimSpace(words)
}
