// Package view renders dashboard data for the terminal.
package view

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Delta classes.
const (
	ClassNone     = ""
	ClassPositive = "positive"
	ClassNegative = "negative"
)

// Delta is a signed change ready for display.
type Delta struct {
	Text  string
	Class string
}

// rubSuffix is the currency sign after a no-break space, as ru-RU prints it.
const rubSuffix = "\u00a0₽"

// FormatRUB renders whole roubles the way ru-RU currency formatting does:
// grouped digits, no fraction, trailing ₽.
func FormatRUB(amount float64) string {
	p := message.NewPrinter(language.Russian)
	return p.Sprintf("%d", int64(math.Round(amount))) + rubSuffix
}

func class(sign int) string {
	switch {
	case sign > 0:
		return ClassPositive
	case sign < 0:
		return ClassNegative
	default:
		return ClassNone
	}
}

// SalesDelta: only an exact zero is "0"; a gain is "+" and the amount, a
// loss is the amount alone styled negative. The sign is taken before
// rounding, so +0.3 renders "+0 ₽".
func SalesDelta(change float64) Delta {
	switch {
	case change == 0:
		return Delta{Text: "0", Class: ClassNone}
	case change > 0:
		return Delta{Text: "+" + FormatRUB(change), Class: ClassPositive}
	default:
		return Delta{Text: FormatRUB(-change), Class: ClassNegative}
	}
}

// OrdersDelta renders a plain signed integer: "+12", "0", "-5".
func OrdersDelta(change int64) Delta {
	text := strconv.FormatInt(change, 10)
	sign := 0
	if change > 0 {
		text = "+" + text
		sign = 1
	} else if change < 0 {
		sign = -1
	}
	return Delta{Text: text, Class: class(sign)}
}
