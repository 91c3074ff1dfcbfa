// Package format renders monetary amounts for logs and diagnostics.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/lcoh-model/pkg/mathutil"
)

// Currency returns a dollar amount with thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	rounded := mathutil.Round(amount)
	formatted := groupThousands(fmt.Sprintf("%.2f", math.Abs(rounded)))
	if rounded < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// PerKg returns a per-kilogram cost with six decimals (e.g., "$1.463123/kg"),
// the precision the component breakdown is shown at.
func PerKg(amount float64) string {
	formatted := fmt.Sprintf("%.6f", math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted + "/kg"
	}
	return "$" + formatted + "/kg"
}

func groupThousands(formatted string) string {
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	if len(intPart) <= 3 {
		return formatted
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	if len(parts) == 2 {
		builder.WriteByte('.')
		builder.WriteString(parts[1])
	}
	return builder.String()
}
