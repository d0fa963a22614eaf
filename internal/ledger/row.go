// Package ledger persists canonical trip records to an append-only tabular
// file and answers whether a record was already logged.
package ledger

import (
	"strconv"

	"trip-audit/internal/dateutils"
	"trip-audit/internal/models"
)

// Row is one persisted ledger line. All cells are strings: monetary columns
// carry fixed two-decimal currency text, duration carries integer seconds,
// distance carries a plain decimal number of miles.
type Row struct {
	DateTime     string `csv:"Date/Time"`
	TripType     string `csv:"Trip Type"`
	Earnings     string `csv:"Earnings"`
	Fare         string `csv:"Fare"`
	Promotion    string `csv:"Promotion"`
	Tip          string `csv:"Tip"`
	StartAddress string `csv:"Start Address"`
	EndAddress   string `csv:"End Address"`
	PointsEarned string `csv:"Points Earned"`
	DurationSecs string `csv:"Duration (seconds)"`
	DistanceMi   string `csv:"Distance (miles)"`
	Discrepancy  string `csv:"Discrepancy Flag"`
	Verified     string `csv:"Verified"`
}

// Header lists the ledger column names in order. The XLSX store writes these
// explicitly; the CSV store derives the same names from the csv struct tags.
var Header = []string{
	"Date/Time", "Trip Type", "Earnings", "Fare", "Promotion", "Tip",
	"Start Address", "End Address", "Points Earned", "Duration (seconds)",
	"Distance (miles)", "Discrepancy Flag", "Verified",
}

// NewRow converts a canonical record into its persisted form.
func NewRow(rec models.CanonicalTripRecord) Row {
	row := Row{
		DateTime:     models.UnknownCell,
		TripType:     string(rec.TripType.Or("")),
		StartAddress: rec.StartAddress.Or(models.UnknownCell),
		EndAddress:   rec.EndAddress.Or(models.UnknownCell),
		Discrepancy:  formatFlag(rec.Discrepancy),
		Verified:     formatFlag(rec.Verified),
	}

	if rec.Timestamp.Known {
		row.DateTime = dateutils.FormatLedgerTimestamp(rec.Timestamp.Value)
	}
	if rec.Earnings.Known {
		row.Earnings = models.FormatAmount(rec.Earnings.Value)
	}
	if rec.Fare.Known {
		row.Fare = models.FormatAmount(rec.Fare.Value)
	}
	if rec.Promotion.Known {
		row.Promotion = models.FormatAmount(rec.Promotion.Value)
	}
	if rec.Tip.Known {
		row.Tip = models.FormatAmount(rec.Tip.Value)
	}
	if rec.PointsEarned.Known {
		row.PointsEarned = strconv.Itoa(rec.PointsEarned.Value)
	}
	if rec.Duration.Known {
		row.DurationSecs = strconv.Itoa(rec.Duration.Value.TotalSeconds())
	}
	// Kilometer distances have no reliable conversion source and are dropped;
	// only mile figures are persisted.
	if rec.Distance.Known && rec.Distance.Value.Unit == models.UnitMiles {
		row.DistanceMi = rec.Distance.Value.Value.String()
	}

	return row
}

// Key reconstructs the canonical trip key of a persisted row. It must agree
// exactly with models.TripRecord.Key for the record that produced the row.
func (r Row) Key() models.CanonicalTripKey {
	return models.NewTripKey(r.DateTime, r.StartAddress, r.EndAddress)
}

// cells returns the row values in Header order, for the XLSX store.
func (r Row) cells() []string {
	return []string{
		r.DateTime, r.TripType, r.Earnings, r.Fare, r.Promotion, r.Tip,
		r.StartAddress, r.EndAddress, r.PointsEarned, r.DurationSecs,
		r.DistanceMi, r.Discrepancy, r.Verified,
	}
}

func formatFlag(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
