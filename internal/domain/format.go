package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// TimeRemaining describes how long until an ark's deadline
type TimeRemaining struct {
	Text    string `json:"text"`
	Urgent  bool   `json:"urgent"`
	Expired bool   `json:"expired"`
}

// RemainingUntil formats the time left until deadline as seen at now
func RemainingUntil(deadline, now time.Time) TimeRemaining {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return TimeRemaining{Text: "Expired", Urgent: true, Expired: true}
	}

	days := int(diff / (24 * time.Hour))
	hours := int((diff % (24 * time.Hour)) / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)

	switch {
	case days > 0:
		return TimeRemaining{Text: fmt.Sprintf("%dd %dh remaining", days, hours), Urgent: diff < URGENT_THRESHOLD}
	case hours > 0:
		return TimeRemaining{Text: fmt.Sprintf("%dh %dm remaining", hours, minutes), Urgent: true}
	default:
		return TimeRemaining{Text: fmt.Sprintf("%dm remaining", minutes), Urgent: true}
	}
}

// FormatDuration renders a deadline duration in its largest whole unit
func FormatDuration(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	switch {
	case days >= 365:
		return plural(days/365, "year")
	case days >= 30:
		return plural(days/30, "month")
	case days >= 7:
		return plural(days/7, "week")
	default:
		return plural(days, "day")
	}
}

// FormatRelative renders an event timestamp relative to now, falling back to a date after a week
func FormatRelative(ts, now time.Time) string {
	diff := now.Sub(ts)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	default:
		return ts.Format("Jan 2")
	}
}

// FormatUnits renders amount as a decimal with the given number of fractional digits
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	neg := amount.Sign() < 0
	digits := new(big.Int).Abs(amount).String()
	if decimals > 0 {
		if len(digits) <= int(decimals) {
			digits = strings.Repeat("0", int(decimals)-len(digits)+1) + digits
		}
		split := len(digits) - int(decimals)
		whole, frac := digits[:split], strings.TrimRight(digits[split:], "0")
		digits = whole
		if frac != "" {
			digits += "." + frac
		}
	}
	if neg {
		return "-" + digits
	}
	return digits
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
