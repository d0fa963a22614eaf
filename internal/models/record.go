// Package models defines the trip record structures shared by the extraction,
// matching, and ledger components.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Opt holds a field value that may be absent. Every extracted field defaults
// to the absent state instead of a magic sentinel string, so genuine data can
// never collide with "not recognized".
type Opt[T any] struct {
	Value T
	Known bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Known: true}
}

// None returns the absent Opt for T.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Or returns the value if present, otherwise fallback.
func (o Opt[T]) Or(fallback T) T {
	if o.Known {
		return o.Value
	}
	return fallback
}

// TripType is the categorical service tier shown on a receipt.
type TripType string

const (
	TripTypeX     TripType = "UberX"
	TripTypeXL    TripType = "UberXL"
	TripTypeBlack TripType = "UberBlack"
)

// TripTypes lists the recognized service tiers in match priority order.
// Matching is case-sensitive: receipts render the tier verbatim and a
// case-folded match would pick up unrelated words.
var TripTypes = []TripType{TripTypeX, TripTypeXL, TripTypeBlack}

// TripDuration is the elapsed trip time as shown on the receipt.
type TripDuration struct {
	Minutes int
	Seconds int
}

// TotalSeconds returns the duration as integer seconds, the form persisted
// in the ledger.
func (d TripDuration) TotalSeconds() int {
	return d.Minutes*60 + d.Seconds
}

// DistanceUnit is the unit token following a distance figure.
type DistanceUnit string

const (
	UnitMiles      DistanceUnit = "mi"
	UnitKilometers DistanceUnit = "km"
)

// TripDistance is the trip distance magnitude plus its unit.
type TripDistance struct {
	Value decimal.Decimal
	Unit  DistanceUnit
}

// TripRecord is the field set extracted from one screenshot's recognized
// text. It is immutable once produced by the field parser; downstream
// transforms build new records.
type TripRecord struct {
	// SourceID identifies the originating image, unique per input file.
	SourceID string

	Timestamp       Opt[time.Time]
	TripType        Opt[TripType]
	Earnings        Opt[decimal.Decimal]
	UpfrontEarnings Opt[decimal.Decimal]
	Fare            Opt[decimal.Decimal]
	Promotion       Opt[decimal.Decimal]
	Tip             Opt[decimal.Decimal]
	StartAddress    Opt[string]
	EndAddress      Opt[string]
	PointsEarned    Opt[int]
	Duration        Opt[TripDuration]
	Distance        Opt[TripDistance]

	// Verified and Discrepancy default to "no issue" (true / false) when the
	// corresponding label is absent from the text; they are never unknown.
	Verified    bool
	Discrepancy bool

	// RawText retains the full recognized text for diagnostics. It is never
	// persisted to the ledger.
	RawText string
}

// CanonicalTripRecord is the single merged record representing one physical
// trip, ready for ledger persistence. It is created by Merge, consumed once
// by the ledger writer, and never mutated.
type CanonicalTripRecord struct {
	TripRecord

	// SourceLabel joins the archived filenames of both screenshots.
	SourceLabel string
}
