// Package sources defines the data-provider contracts for the steamtrack
// aggregation engine. A source is one external service consulted for facts
// about a game; the fan-out orchestrator queries every registered source
// concurrently and collects one outcome per source, whether it succeeded
// or failed, so the aggregator can apply fallback policy deterministically.
package sources

import (
	"context"
	"slices"
)

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Common source IDs.
const (
	// SteamStoreID is the Steam storefront appdetails API.
	SteamStoreID ID = "steam_store"
	// SteamSpyID is the SteamSpy appdetails API.
	SteamSpyID ID = "steamspy"
	// SteamPlayersID is the Steam live player-count API.
	SteamPlayersID ID = "steam_players"
	// CheapSharkID is the CheapShark deals API.
	CheapSharkID ID = "cheapshark"
	// PCGamingWikiID is the PCGamingWiki cargo-query API.
	PCGamingWikiID ID = "pcgamingwiki"
	// ProtonDBID is the ProtonDB report-summary API.
	ProtonDBID ID = "protondb"
)

// IDs returns all standard source IDs.
// This provides a convenient way to iterate over all ID values.
func IDs() []ID {
	return []ID{
		SteamStoreID,
		SteamSpyID,
		SteamPlayersID,
		CheapSharkID,
		PCGamingWikiID,
		ProtonDBID,
	}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Provider is a single external data source consulted for facts about a
// game. Implementations must never panic; asynchronous failure is reported
// as a typed error, not a propagating exception.
type Provider interface {
	// ID returns the identity of this source
	ID() ID

	// Fetch retrieves this source's raw payload for one game.
	// The display name is passed for sources keyed by title rather than
	// app ID. A nil payload with a nil error means the source answered
	// but had nothing for this game.
	Fetch(ctx context.Context, appID, name string) (any, error)
}

// Status describes how a provider call settled.
type Status string

const (
	// StatusFulfilled means the provider returned a payload.
	StatusFulfilled Status = "fulfilled"
	// StatusFailed means the provider errored, timed out, or returned a
	// malformed payload.
	StatusFailed Status = "failed"
)

// Outcome is the settled result of one provider call.
type Outcome struct {
	Status  Status
	Payload any
	Err     error
}

// Fulfilled reports whether the outcome carries a usable payload.
func (o Outcome) Fulfilled() bool {
	return o.Status == StatusFulfilled && o.Payload != nil
}

// Bundle maps every registered source to its settled outcome for one
// fan-out. Invariant: exactly one entry per registered source; failures
// are represented, never dropped.
type Bundle map[ID]Outcome

// Payload returns the payload for a source if it was fulfilled.
func (b Bundle) Payload(id ID) (any, bool) {
	o, found := b[id]
	if !found || !o.Fulfilled() {
		return nil, false
	}
	return o.Payload, true
}

// Failures returns the error for every failed source, keyed by source ID
// string for error reporting.
func (b Bundle) Failures() map[string]error {
	failures := make(map[string]error)
	for id, o := range b {
		if o.Status == StatusFailed {
			failures[id.String()] = o.Err
		}
	}
	return failures
}

// AllFailed reports whether no source produced a payload, i.e. the
// aggregation has no usable data whatsoever.
func (b Bundle) AllFailed() bool {
	for _, o := range b {
		if o.Fulfilled() {
			return false
		}
	}
	return true
}
