package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a backend amount value to a decimal. The backend sends
// amounts inconsistently as strings or numbers, and older records omit them
// entirely; every unparsable or missing value coerces to zero so that tree
// aggregates stay total functions.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseEpoch converts a backend epoch-seconds value, again string or number
// on the wire, to int64. Unparsable or missing values coerce to 0.
func ParseEpoch(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some endpoints send epoch seconds with a fractional part.
		d, derr := decimal.NewFromString(s)
		if derr != nil {
			return 0
		}
		return d.IntPart()
	}
	return secs
}

// EpochToTime converts backend epoch seconds to a time.Time. Zero or negative
// values map to the epoch itself, keeping recency sorts deterministic.
func EpochToTime(secs int64) time.Time {
	if secs < 0 {
		secs = 0
	}
	return time.Unix(secs, 0).UTC()
}

func StringPtr(s string) *string {
	return &s
}
