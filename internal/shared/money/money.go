// Package money converts between decimal major units used on the wire and
// int64 minor units (paise) used in storage.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const minorPerMajor = 100

var printer = message.NewPrinter(language.English)

// ToMinor rounds a major-unit amount to the nearest minor unit.
func ToMinor(major float64) int64 {
	return int64(math.Round(major * minorPerMajor))
}

// ToMajor converts minor units back to a two-decimal major amount.
func ToMajor(minor int64) float64 {
	return float64(minor) / minorPerMajor
}

// Format renders minor units with two decimals and digit grouping,
// e.g. 123456 -> "1,234.56".
func Format(minor int64) string {
	return printer.Sprintf("%.2f", ToMajor(minor))
}
