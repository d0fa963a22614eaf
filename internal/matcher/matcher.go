// Package matcher decides whether two extracted records describe the same
// physical trip, and merges a matched pair into one canonical record.
package matcher

import (
	"strings"

	"github.com/shopspring/decimal"

	"trip-audit/internal/models"
)

// SameTrip reports whether a and b are two faces of the same trip.
//
// Address agreement is a necessary precondition: both start and end addresses
// must be present and textually equal on both records. When neither record
// carries an upfront figure, addresses alone are accepted. Otherwise the
// upfront earnings of one record must reconcile with the fare plus promotion
// of the other, within one cent, checked in both directions since either
// screenshot may hold the upfront figure.
func SameTrip(a, b models.TripRecord) bool {
	if !addressesEqual(a.StartAddress, b.StartAddress) || !addressesEqual(a.EndAddress, b.EndAddress) {
		return false
	}

	if !a.UpfrontEarnings.Known || !b.UpfrontEarnings.Known {
		return true
	}

	return upfrontReconciles(a, b) || upfrontReconciles(b, a)
}

func addressesEqual(x, y models.Opt[string]) bool {
	if !x.Known || !y.Known {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(x.Value), strings.TrimSpace(y.Value))
}

// upfrontReconciles checks x's pre-trip upfront estimate against y's settled
// fare breakdown. A missing promotion counts as zero; a missing fare means
// there is nothing to reconcile against.
func upfrontReconciles(x, y models.TripRecord) bool {
	if !x.UpfrontEarnings.Known || !y.Fare.Known {
		return false
	}
	settled := y.Fare.Value.Add(y.Promotion.Or(decimal.Zero))
	return models.WithinOneCent(x.UpfrontEarnings.Value, settled)
}

// Merge combines two matched records into one canonical record. Field-wise,
// primary's value wins; secondary only fills fields primary left unknown.
// Callers must pick primary consistently (the first-encountered record in
// enumeration order) so repeated runs produce identical canonical records.
func Merge(primary, secondary models.TripRecord) models.CanonicalTripRecord {
	merged := primary

	merged.Timestamp = pick(primary.Timestamp, secondary.Timestamp)
	merged.TripType = pick(primary.TripType, secondary.TripType)
	merged.Earnings = pick(primary.Earnings, secondary.Earnings)
	merged.UpfrontEarnings = pick(primary.UpfrontEarnings, secondary.UpfrontEarnings)
	merged.Fare = pick(primary.Fare, secondary.Fare)
	merged.Promotion = pick(primary.Promotion, secondary.Promotion)
	merged.Tip = pick(primary.Tip, secondary.Tip)
	merged.StartAddress = pick(primary.StartAddress, secondary.StartAddress)
	merged.EndAddress = pick(primary.EndAddress, secondary.EndAddress)
	merged.PointsEarned = pick(primary.PointsEarned, secondary.PointsEarned)
	merged.Duration = pick(primary.Duration, secondary.Duration)
	merged.Distance = pick(primary.Distance, secondary.Distance)

	return models.CanonicalTripRecord{TripRecord: merged}
}

func pick[T any](primary, secondary models.Opt[T]) models.Opt[T] {
	if primary.Known {
		return primary
	}
	return secondary
}
