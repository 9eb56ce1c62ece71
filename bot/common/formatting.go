package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatCarrots formats a carrot amount with thousand separators
func FormatCarrots(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%d", amount)
	n := len(str)
	var result strings.Builder
	if negative {
		result.WriteRune('-')
	}
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatSignedCarrots formats a signed delta with an explicit plus sign
func FormatSignedCarrots(amount int64) string {
	if amount >= 0 {
		return "+" + FormatCarrots(amount)
	}
	return FormatCarrots(amount)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays
// in the viewer's local timezone. Format types: "t" short time, "R" relative.
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
