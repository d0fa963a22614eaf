// Package dateutils provides date and time parsing for recognized receipt text.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layout constants used throughout the application.
const (
	// LayoutReceiptShort matches the abbreviated month form emitted on
	// trip receipts, e.g. "Jun 3, 2025".
	LayoutReceiptShort = "Jan 2, 2006"
	// LayoutReceiptLong matches the spelled-out month form, e.g. "June 3, 2025".
	LayoutReceiptLong = "January 2, 2006"
	// LayoutReceiptTime matches the hour:minute-with-meridiem form, e.g. "4:41 PM".
	LayoutReceiptTime = "3:04 PM"
	// LayoutLedgerKey is the minute-precision form used in ledger rows and
	// record keys, e.g. "06/03/2025 04:41 PM".
	LayoutLedgerKey = "01/02/2006 03:04 PM"
)

// receiptLayouts are tried in order when combining date and time fragments.
var receiptLayouts = []string{
	LayoutReceiptShort + " " + LayoutReceiptTime,
	LayoutReceiptLong + " " + LayoutReceiptTime,
}

var spaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace in a recognized date fragment.
func CleanDateString(s string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// CombineDateTime parses separately recognized date and time fragments into a
// single timestamp. OCR output often uppercases or lowercases the meridiem, so
// it is normalized before parsing.
func CombineDateTime(dateStr, timeStr string) (time.Time, error) {
	combined := CleanDateString(dateStr) + " " + normalizeMeridiem(timeStr)
	for _, layout := range receiptLayouts {
		if t, err := time.Parse(layout, combined); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date/time: %q", combined)
}

// ParseLedgerTimestamp parses a minute-precision ledger cell back into a time.
func ParseLedgerTimestamp(s string) (time.Time, error) {
	return time.Parse(LayoutLedgerKey, CleanDateString(s))
}

// FormatLedgerTimestamp formats a timestamp to the minute-precision ledger form.
func FormatLedgerTimestamp(t time.Time) string {
	return t.Format(LayoutLedgerKey)
}

func normalizeMeridiem(timeStr string) string {
	s := CleanDateString(timeStr)
	upper := strings.ToUpper(s)
	// "4:41pm" -> "4:41 PM" so a single layout covers both spacings.
	if idx := strings.IndexAny(upper, "AP"); idx > 0 && !strings.Contains(upper, " ") {
		return upper[:idx] + " " + upper[idx:]
	}
	return upper
}
