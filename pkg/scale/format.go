package scale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// minus is the typographic minus sign used for negative numbers.
const minus = "−"

var printer = message.NewPrinter(language.English)

// FormatInteger rounds v to the nearest integer (halves up) and formats it
// without digit grouping.
func FormatInteger(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	r := math.Floor(v + 0.5)
	if math.IsInf(r, 0) {
		if r < 0 {
			return minus + "Infinity"
		}
		return "Infinity"
	}
	s := strconv.FormatFloat(math.Abs(r), 'f', 0, 64)
	return signed(r < 0, s)
}

// GroupedFixed returns a formatter with fixed precision and thousands
// separators, e.g. 1234.5 -> "1,234.5" at precision 1.
func GroupedFixed(precision int) func(float64) string {
	verb := fmt.Sprintf("%%.%df", precision)
	return func(v float64) string {
		if math.IsNaN(v) {
			return "NaN"
		}
		s := printer.Sprintf(verb, math.Abs(v))
		return signed(v < 0, s)
	}
}

// PrecisionFixed returns the number of fractional digits needed to tell
// apart values that are step apart.
func PrecisionFixed(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	return max(0, -exponent(step))
}

// exponent returns the decimal exponent of x in scientific notation.
func exponent(x float64) int {
	s := strconv.FormatFloat(x, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	e, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return 0
	}
	return e
}

// signed prefixes a minus unless the formatted magnitude is zero.
func signed(negative bool, s string) string {
	if !negative || strings.Trim(s, "0.,") == "" {
		return s
	}
	return minus + s
}
