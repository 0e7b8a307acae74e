package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// English locale keeps thousand separators stable across environments.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with precision decimals and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
// Negative precision is treated as zero.
func FormatFloat(f float64, precision int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}

	formatted := strconv.FormatFloat(math.Abs(f), 'f', precision, 64)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// Beyond int64; leave ungrouped.
		return strconv.FormatFloat(f, 'f', precision, 64)
	}

	var sb strings.Builder
	if f < 0 && strings.Trim(formatted, "0.") != "" {
		sb.WriteByte('-')
	}
	sb.WriteString(FormatNumber(n))
	if hasFrac {
		sb.WriteByte('.')
		sb.WriteString(fracPart)
	}
	return sb.String()
}

// FormatPercent formats a 0..1 fraction as a percentage with precision decimals.
// Example: FormatPercent(0.508, 1) returns "50.8%".
func FormatPercent(fraction float64, precision int) string {
	return FormatFloat(fraction*100, precision) + "%"
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values below LargeNumberThreshold use comma-separated format,
// values from there use "~X.X million" and from BillionThreshold "~X.X billion".
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
