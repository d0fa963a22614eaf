// Package fieldparser turns raw recognized text into a typed trip record.
//
// Every extraction rule is independent and order-insensitive: a field that
// cannot be resolved falls back to its documented default or to unknown,
// and malformed input never fails the whole record.
package fieldparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"trip-audit/internal/dateutils"
	"trip-audit/internal/models"
	"trip-audit/internal/store"
)

var (
	dateRe     = regexp.MustCompile(`[A-Za-z]{3,9} \d{1,2}, \d{4}`)
	timeRe     = regexp.MustCompile(`\d{1,2}:\d{2}\s?[APMapm]{2}`)
	earningsRe = regexp.MustCompile(`Your earnings\s*\$?([\d.,]+)`)
	fareRe     = regexp.MustCompile(`Fare\s*\$?([\d.,]+)`)
	promoRe    = regexp.MustCompile(`Promotion\s*\$?([\d.,]+)`)
	tipRe      = regexp.MustCompile(`Tip\s*\$?([\d.,]+)`)
	upfrontRe  = regexp.MustCompile(`\$([\d.,]+)\s*Upfront fare`)
	durationRe = regexp.MustCompile(`\b(\d{1,3})\s*min\s*(\d{1,3})\s*sec\b`)
	distanceRe = regexp.MustCompile(`\b(\d{1,3}\.\d{1,2})\s*(mi|km)\b`)
	// Single-digit point counts; tesseract regularly reads the digit 1 as a
	// lowercase l, which is normalized back to 1.
	pointsRe      = regexp.MustCompile(`(?i)\b([15l])\s*points?\s*earned\b`)
	verifiedRe    = regexp.MustCompile(`Verified:\s*(TRUE|FALSE)`)
	discrepancyRe = regexp.MustCompile(`Discrepancy Flag:\s*(TRUE|FALSE)`)

	tripTypeRe = buildTripTypeRe()
)

func buildTripTypeRe() *regexp.Regexp {
	names := make([]string, len(models.TripTypes))
	for i, t := range models.TripTypes {
		names[i] = regexp.QuoteMeta(string(t))
	}
	return regexp.MustCompile(`\b(` + strings.Join(names, "|") + `)\b`)
}

// Parser extracts trip record fields from recognized text. Address capture is
// driven by the injected anchor rules; with no rules, addresses stay unknown.
type Parser struct {
	anchors []store.AnchorRule
}

// New creates a Parser with the given address anchor rules.
func New(anchors []store.AnchorRule) *Parser {
	return &Parser{anchors: anchors}
}

// Parse builds a TripRecord from the recognized text of one screenshot.
// It never fails: every field independently resolves to a value, a default,
// or unknown.
func (p *Parser) Parse(text, sourceID string) models.TripRecord {
	rec := models.TripRecord{
		SourceID:        sourceID,
		Timestamp:       p.parseTimestamp(text),
		TripType:        p.parseTripType(text),
		Earnings:        parseLabeledAmount(earningsRe, text),
		Fare:            parseLabeledAmount(fareRe, text),
		Promotion:       parseLabeledAmount(promoRe, text),
		Tip:             p.parseTip(text),
		UpfrontEarnings: parseLabeledAmount(upfrontRe, text),
		PointsEarned:    p.parsePoints(text),
		Duration:        p.parseDuration(text),
		Distance:        p.parseDistance(text),
		Verified:        parseFlag(verifiedRe, text, true),
		Discrepancy:     parseFlag(discrepancyRe, text, false),
		RawText:         text,
	}
	rec.StartAddress, rec.EndAddress = p.parseAddresses(text)
	return rec
}

// parseTimestamp combines a month-name date and a meridiem time found
// anywhere in the text. If either piece is missing or the combination does
// not parse, the timestamp is unknown; it is never partially populated.
func (p *Parser) parseTimestamp(text string) models.Opt[time.Time] {
	dateStr := dateRe.FindString(text)
	timeStr := timeRe.FindString(text)
	if dateStr == "" || timeStr == "" {
		return models.None[time.Time]()
	}
	t, err := dateutils.CombineDateTime(dateStr, timeStr)
	if err != nil {
		return models.None[time.Time]()
	}
	return models.Some(t)
}

func (p *Parser) parseTripType(text string) models.Opt[models.TripType] {
	if m := tripTypeRe.FindString(text); m != "" {
		return models.Some(models.TripType(m))
	}
	return models.None[models.TripType]()
}

func parseLabeledAmount(re *regexp.Regexp, text string) models.Opt[decimal.Decimal] {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return models.None[decimal.Decimal]()
	}
	amount, ok := models.ParseAmount(m[1])
	if !ok {
		return models.None[decimal.Decimal]()
	}
	return models.Some(amount)
}

// parseTip resolves to $0.00 instead of unknown when no tip amount can be
// read: a trip with no tip shows no figure, and an unknown tip would block
// otherwise-identical records from comparing equal.
func (p *Parser) parseTip(text string) models.Opt[decimal.Decimal] {
	if tip := parseLabeledAmount(tipRe, text); tip.Known {
		return tip
	}
	return models.Some(decimal.Zero)
}

func (p *Parser) parsePoints(text string) models.Opt[int] {
	m := pointsRe.FindStringSubmatch(text)
	if m == nil {
		return models.None[int]()
	}
	raw := strings.ToLower(m[1])
	if raw == "l" {
		raw = "1"
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return models.None[int]()
	}
	return models.Some(n)
}

func (p *Parser) parseDuration(text string) models.Opt[models.TripDuration] {
	m := durationRe.FindStringSubmatch(text)
	if m == nil {
		return models.None[models.TripDuration]()
	}
	minutes, err1 := strconv.Atoi(m[1])
	seconds, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return models.None[models.TripDuration]()
	}
	return models.Some(models.TripDuration{Minutes: minutes, Seconds: seconds})
}

func (p *Parser) parseDistance(text string) models.Opt[models.TripDistance] {
	m := distanceRe.FindStringSubmatch(text)
	if m == nil {
		return models.None[models.TripDistance]()
	}
	value, err := decimal.NewFromString(m[1])
	if err != nil {
		return models.None[models.TripDistance]()
	}
	return models.Some(models.TripDistance{
		Value: value,
		Unit:  models.DistanceUnit(m[2]),
	})
}

func parseFlag(re *regexp.Regexp, text string, absentDefault bool) bool {
	m := re.FindStringSubmatch(text)
	if m == nil {
		// No explicit flag on the receipt means "no issue".
		return absentDefault
	}
	return m[1] == "TRUE"
}

// parseAddresses scans the text line by line against the anchor rules. The
// first line containing an anchor yields that rule's field: the captured
// value is the line from the anchor onward, so house numbers preceding the
// anchor street are dropped along with any OCR noise.
func (p *Parser) parseAddresses(text string) (start, end models.Opt[string]) {
	start = models.None[string]()
	end = models.None[string]()

	for _, line := range strings.Split(text, "\n") {
		for _, rule := range p.anchors {
			idx := strings.Index(line, rule.Match)
			if idx < 0 {
				continue
			}
			captured := strings.TrimSpace(line[idx:])
			switch rule.Field {
			case store.FieldStartAddress:
				if !start.Known {
					start = models.Some(captured)
				}
			case store.FieldEndAddress:
				if !end.Known {
					end = models.Some(captured)
				}
			}
		}
	}
	return start, end
}
