package aggregate

import (
	"github.com/rs/zerolog"

	"github.com/steamtrack/steamtrack/pkg/resolve"
	"github.com/steamtrack/steamtrack/pkg/sources"
	"github.com/steamtrack/steamtrack/pkg/types"
)

// payloadAs extracts a fulfilled payload of the expected concrete type.
// A fulfilled outcome carrying an unexpected type is treated as absent.
func payloadAs[T any](bundle sources.Bundle, id sources.ID) *T {
	raw, ok := bundle.Payload(id)
	if !ok {
		return nil
	}
	typed, ok := raw.(*T)
	if !ok {
		return nil
	}
	return typed
}

// resolveText runs a textual fallback chain and maps a fully-absent field
// to the unknown marker.
func resolveText(logger *zerolog.Logger, field string, candidates ...resolve.Candidate[string]) string {
	chain := resolve.Chain[string]{Field: field, Valid: resolve.NonEmpty}
	value, source, ok := chain.Resolve(candidates...)
	if !ok {
		return types.Unknown
	}
	logger.Debug().
		Str("field", field).
		Str("source", source.String()).
		Msg("field resolved")
	return value
}

func storeText(store *sources.StoreDetails, pick func(*sources.StoreDetails) string) resolve.Candidate[string] {
	if store == nil {
		return resolve.Absent[string](sources.SteamStoreID)
	}
	return resolve.From(sources.SteamStoreID, pick(store))
}

func spyText(spy *sources.SpyDetails, pick func(*sources.SpyDetails) string) resolve.Candidate[string] {
	if spy == nil {
		return resolve.Absent[string](sources.SteamSpyID)
	}
	return resolve.From(sources.SteamSpyID, pick(spy))
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
