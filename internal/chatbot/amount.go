package chatbot

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches the first money-looking token in free text: optional
// dollar sign, digits with optional comma-separated thousands groups, optional
// 1-2 digit fraction. "$1,200.50" and "500" both match.
var amountPattern = regexp.MustCompile(`\$?\s*[0-9]+(?:,[0-9]{3})*(?:\.[0-9]{1,2})?`)

var amountCleaner = strings.NewReplacer("$", "", ",", "", " ", "", "\t", "")

// ExtractAmount scans text for the first amount occurrence and parses it.
// The second return value reports whether any amount was found.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	match := amountPattern.FindString(text)
	if match == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(amountCleaner.Replace(match))
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}
