package matcher

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-audit/internal/models"
)

func amount(s string) models.Opt[decimal.Decimal] {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return models.Some(d)
}

func addressed(start, end string) models.TripRecord {
	return models.TripRecord{
		StartAddress: models.Some(start),
		EndAddress:   models.Some(end),
	}
}

func TestSameTripAddressPrecondition(t *testing.T) {
	base := addressed("Esprit Dr, Richardson, TX", "N Downwater St, Wichita, KS")

	tests := []struct {
		name     string
		other    models.TripRecord
		expected bool
	}{
		{"identical addresses", addressed("Esprit Dr, Richardson, TX", "N Downwater St, Wichita, KS"), true},
		{"case and whitespace insensitive", addressed("  esprit dr, richardson, tx ", "n downwater st, wichita, ks"), true},
		{"different end address", addressed("Esprit Dr, Richardson, TX", "Elm St, Dallas, TX"), false},
		{"missing start address", models.TripRecord{EndAddress: models.Some("N Downwater St, Wichita, KS")}, false},
		{"both addresses missing", models.TripRecord{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SameTrip(base, tc.other))
			assert.Equal(t, tc.expected, SameTrip(tc.other, base), "must be symmetric")
		})
	}
}

// Addresses alone are sufficient evidence when no upfront figure exists to
// cross-check, regardless of every other field.
func TestSameTripAddressesOnlyWhenUpfrontUnknown(t *testing.T) {
	a := addressed("Esprit Dr, Richardson, TX", "N Downwater St, Wichita, KS")
	b := addressed("Esprit Dr, Richardson, TX", "N Downwater St, Wichita, KS")

	a.Timestamp = models.Some(time.Date(2025, time.June, 3, 16, 41, 0, 0, time.UTC))
	a.Earnings = amount("99.99")
	b.Fare = amount("1.00")

	assert.True(t, SameTrip(a, b))
	assert.True(t, SameTrip(b, a))
}

func TestSameTripUpfrontCrossCheck(t *testing.T) {
	start, end := "Esprit Dr, Richardson, TX", "N Downwater St, Wichita, KS"

	tests := []struct {
		name     string
		upfront  string
		fare     string
		promo    string
		expected bool
	}{
		{"upfront equals fare plus promotion", "12.50", "10.00", "2.50", true},
		{"sum off by a dollar", "12.50", "9.00", "2.50", false},
		{"within one cent", "12.50", "10.00", "2.495", true},
		{"exactly one cent off", "12.50", "10.00", "2.49", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offer := addressed(start, end)
			offer.UpfrontEarnings = amount(tc.upfront)

			settled := addressed(start, end)
			settled.UpfrontEarnings = amount(tc.upfront) // both halves show the figure
			settled.Fare = amount(tc.fare)
			settled.Promotion = amount(tc.promo)

			assert.Equal(t, tc.expected, SameTrip(offer, settled))
			assert.Equal(t, tc.expected, SameTrip(settled, offer), "must be symmetric")
		})
	}
}

func TestSameTripPromotionDefaultsToZero(t *testing.T) {
	offer := addressed("A St", "B St")
	offer.UpfrontEarnings = amount("10.00")

	settled := addressed("A St", "B St")
	settled.UpfrontEarnings = amount("10.00")
	settled.Fare = amount("10.00")

	assert.True(t, SameTrip(offer, settled))
}

func TestSameTripOneSidedUpfrontAccepted(t *testing.T) {
	// Only one record carries the upfront figure: addresses suffice.
	offer := addressed("A St", "B St")
	offer.UpfrontEarnings = amount("12.50")

	settled := addressed("A St", "B St")
	settled.Fare = amount("9.00")

	assert.True(t, SameTrip(offer, settled))
	assert.True(t, SameTrip(settled, offer))
}

func TestMergePrimaryWins(t *testing.T) {
	primary := addressed("A St", "B St")
	primary.Timestamp = models.Some(time.Date(2025, time.June, 3, 16, 41, 0, 0, time.UTC))
	primary.UpfrontEarnings = amount("12.50")
	primary.Tip = amount("0")

	secondary := addressed("ignored", "ignored")
	secondary.Fare = amount("10.00")
	secondary.Promotion = amount("2.50")
	secondary.Tip = amount("5.00")
	secondary.PointsEarned = models.Some(1)

	merged := Merge(primary, secondary)

	// Primary's present values win.
	assert.Equal(t, primary.StartAddress, merged.StartAddress)
	assert.Equal(t, primary.Timestamp, merged.Timestamp)
	assert.Equal(t, primary.Tip, merged.Tip)

	// Secondary fills primary's unknowns.
	assert.Equal(t, secondary.Fare, merged.Fare)
	assert.Equal(t, secondary.Promotion, merged.Promotion)
	assert.Equal(t, secondary.PointsEarned, merged.PointsEarned)

	// Both cross-check figures survive the merge.
	require.True(t, merged.UpfrontEarnings.Known)
	require.True(t, merged.Fare.Known)
}

// Merge never invents a value absent from both inputs.
func TestMergeNeverInvents(t *testing.T) {
	merged := Merge(models.TripRecord{SourceID: "a"}, models.TripRecord{SourceID: "b"})

	assert.False(t, merged.Timestamp.Known)
	assert.False(t, merged.TripType.Known)
	assert.False(t, merged.Earnings.Known)
	assert.False(t, merged.UpfrontEarnings.Known)
	assert.False(t, merged.Fare.Known)
	assert.False(t, merged.Promotion.Known)
	assert.False(t, merged.Tip.Known)
	assert.False(t, merged.StartAddress.Known)
	assert.False(t, merged.EndAddress.Known)
	assert.False(t, merged.PointsEarned.Known)
	assert.False(t, merged.Duration.Known)
	assert.False(t, merged.Distance.Known)
	assert.Equal(t, "a", merged.SourceID)
}
