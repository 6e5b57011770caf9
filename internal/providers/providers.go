// Package providers implements the HTTP clients for the six
// Steam-ecosystem services the engine aggregates: the Steam storefront,
// SteamSpy, the live player-count API, CheapShark, PCGamingWiki, and
// ProtonDB. Every provider satisfies sources.Provider and reports
// failure as a typed error; none of them panic, retry, or impose their
// own timeout beyond the shared transport's.
package providers

import (
	"github.com/steamtrack/steamtrack/internal/config"
	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/sources"
)

// Set is the full provider collection, with typed handles for the
// providers that expose list surfaces beyond the fan-out.
type Set struct {
	Store   *SteamStore
	Spy     *SteamSpy
	Players *SteamPlayers
	Deals   *CheapShark
	Wiki    *PCGamingWiki
	Proton  *ProtonDB
}

// NewSet constructs all six providers on one shared transport.
func NewSet(client *transport.Client, region config.Region) *Set {
	return &Set{
		Store:   NewSteamStore(client, region),
		Spy:     NewSteamSpy(client),
		Players: NewSteamPlayers(client),
		Deals:   NewCheapShark(client),
		Wiki:    NewPCGamingWiki(client),
		Proton:  NewProtonDB(client),
	}
}

// All returns the providers in registry order.
func (s *Set) All() []sources.Provider {
	return []sources.Provider{s.Store, s.Spy, s.Players, s.Deals, s.Wiki, s.Proton}
}
