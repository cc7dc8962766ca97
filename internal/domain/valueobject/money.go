package valueobject

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	nonNumericChars = regexp.MustCompile(`[^0-9.\-]+`)
	leadingFloat    = regexp.MustCompile(`^[-]?(\d+\.?\d*|\.\d+)`)
	usdPrinter      = message.NewPrinter(language.AmericanEnglish)
)

// ParseAmount разбирает сумму, сохранённую строкой: все символы, кроме цифр,
// минуса и точки, отбрасываются, затем берётся самый длинный префикс,
// являющийся числом. ok == false, если числа нет.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := nonNumericChars.ReplaceAllString(raw, "")
	literal := leadingFloat.FindString(cleaned)
	if literal == "" {
		return decimal.Zero, false
	}

	// "12." и ".5" decimal не принимает без нормализации.
	literal = strings.TrimSuffix(literal, ".")
	if strings.HasPrefix(literal, ".") {
		literal = "0" + literal
	} else if strings.HasPrefix(literal, "-.") {
		literal = "-0" + literal[1:]
	}

	d, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatUSD форматирует сумму в стиле en-US: $1,234.56.
func FormatUSD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}
	if amount < 0 {
		return "-$" + usdPrinter.Sprintf("%.2f", -amount)
	}
	return "$" + usdPrinter.Sprintf("%.2f", amount)
}

// FormatDate возвращает дату вида "Jan 2, 2006" или "N/A" для пустого значения.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}
