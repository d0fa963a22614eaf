package models

import (
	"strings"

	"trip-audit/internal/dateutils"
)

// UnknownCell is the placeholder persisted for unresolved timestamp and
// address cells. Keys lower-case it so reconstructed rows compare equal.
const UnknownCell = "N/A"

// CanonicalTripKey identifies one logged trip: the timestamp at minute
// precision plus the normalized start and end addresses. Two records with the
// same key are the same trip.
type CanonicalTripKey string

// NewTripKey builds a key from its three components. It is the single place
// key formatting lives, so a key computed from a freshly merged record and
// one reconstructed from a persisted ledger row always agree.
func NewTripKey(timestampCell, startAddress, endAddress string) CanonicalTripKey {
	parts := []string{
		strings.TrimSpace(timestampCell),
		normalizeAddress(startAddress),
		normalizeAddress(endAddress),
	}
	if parts[0] == "" {
		parts[0] = UnknownCell
	}
	return CanonicalTripKey(strings.Join(parts, "|"))
}

// Key derives the canonical identity key of a record.
func (r *TripRecord) Key() CanonicalTripKey {
	ts := UnknownCell
	if r.Timestamp.Known {
		ts = dateutils.FormatLedgerTimestamp(r.Timestamp.Value)
	}
	return NewTripKey(ts, r.StartAddress.Or(UnknownCell), r.EndAddress.Or(UnknownCell))
}

func normalizeAddress(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" {
		addr = strings.ToLower(UnknownCell)
	}
	return addr
}
