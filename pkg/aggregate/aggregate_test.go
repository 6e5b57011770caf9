package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamtrack/steamtrack/pkg/errors"
	"github.com/steamtrack/steamtrack/pkg/sources"
	"github.com/steamtrack/steamtrack/pkg/types"
)

type stubProvider struct {
	id      sources.ID
	payload any
	err     error
}

func (p *stubProvider) ID() sources.ID { return p.id }

func (p *stubProvider) Fetch(_ context.Context, _, _ string) (any, error) {
	return p.payload, p.err
}

func fullRegistry() *sources.Registry {
	return sources.NewRegistry(
		&stubProvider{id: sources.SteamStoreID, payload: &sources.StoreDetails{
			Name:             "Portal 2",
			ShortDescription: "The sequel to Portal.",
			Developers:       []string{"Valve"},
			Publishers:       []string{"Valve"},
			PriceOverview: &sources.PriceOverview{
				Final:           499,
				DiscountPercent: 75,
				FinalFormatted:  "$4.99",
			},
			Platforms:    sources.Platforms{Windows: true, Linux: true},
			Achievements: &sources.Achievements{Total: 51},
			ReleaseDate:  &sources.ReleaseDate{Date: "18 Apr, 2011"},
			SupportedLanguages: "English<strong>*</strong>, French, German" +
				"<br><strong>*</strong>languages with full audio support",
			ControllerSupport: "full",
			PCRequirements: sources.Requirements{
				Minimum: "<strong>Storage:</strong> 8 GB available space",
			},
			ContentDescriptors: &sources.ContentDescriptors{Notes: "Playable on Steam Deck"},
			Genres:             []sources.Genre{{Description: "puzzle"}},
		}},
		&stubProvider{id: sources.SteamSpyID, payload: &sources.SpyDetails{
			Name:           "Portal 2",
			Developer:      "Valve",
			Publisher:      "Valve",
			Positive:       90,
			Negative:       10,
			Owners:         "10,000,000 .. 20,000,000",
			AverageForever: 90,
			Average2Weeks:  45,
			MedianForever:  600,
			CCU:            1200,
			Price:          "499",
			Tags:           sources.TagSet{"Puzzle": 100, "Co-op": 80},
		}},
		&stubProvider{id: sources.SteamPlayersID, payload: &sources.PlayerCount{Count: 4321}},
		&stubProvider{id: sources.CheapSharkID, payload: &sources.DealInfo{
			CheapestPriceEver: &sources.PricePoint{Price: "0.89"},
			Deals:             []sources.DealOffer{{Price: "1.99"}},
		}},
		&stubProvider{id: sources.PCGamingWikiID, payload: &sources.WikiVideo{
			UltrawideSupport: "true",
			HDRSupport:       "false",
		}},
		&stubProvider{id: sources.ProtonDBID, payload: &sources.ProtonSummary{Tier: "platinum"}},
	)
}

func TestAggregateFullBundle(t *testing.T) {
	record, err := New(fullRegistry()).Aggregate(context.Background(), "620", "Portal 2")
	require.NoError(t, err)

	assert.Equal(t, "620", record.AppID)
	assert.Equal(t, "Portal 2", record.Name)
	assert.Equal(t, "The sequel to Portal.", record.Description)
	assert.Equal(t, "Valve", record.Developer)

	assert.Equal(t, "$4.99 (−75%)", record.Price)
	assert.Equal(t, "$0.89 USD", record.HistoricalLow)
	assert.Equal(t, "$1.99 USD", record.BestDeal)

	require.NotNil(t, record.LivePlayers)
	assert.Equal(t, 4321, *record.LivePlayers)
	require.NotNil(t, record.TwoWeekCCU)
	assert.Equal(t, 1200, *record.TwoWeekCCU)

	assert.True(t, record.Owners.Numeric)
	assert.Equal(t, "10.0M – 20.0M", record.Owners.Text)

	assert.Equal(t, "90%", record.Score)
	assert.Equal(t, "100", record.ReviewCount)
	assert.Equal(t, "1h 30m", record.AvgForever)
	assert.Equal(t, "10h", record.MedianForever)
	assert.Equal(t, "45m", record.Avg2Weeks)

	assert.Equal(t, "18 Apr, 2011", record.Release.Display)
	assert.Equal(t, time.Date(2011, time.April, 18, 0, 0, 0, 0, time.UTC), record.Release.Parsed)
	assert.Equal(t, []string{"Win", "Lin"}, record.Platforms)
	require.NotNil(t, record.Languages)
	assert.Equal(t, 3, *record.Languages)
	assert.Equal(t, "Full", record.Controller)
	assert.Equal(t, "8 GB", record.Storage)
	assert.Equal(t, "51", record.Achievements)

	assert.Equal(t, "Supported", record.Ultrawide)
	assert.Equal(t, "No", record.HDR)
	assert.Equal(t, "Steam Deck (Platinum)", record.Deck)

	// Storefront genres lead, community tags follow, duplicates collapse.
	assert.Equal(t, []string{"Puzzle", "Co-Op"}, record.Tags)
}

func TestAggregatePartialFailure(t *testing.T) {
	registry := sources.NewRegistry(
		&stubProvider{id: sources.SteamSpyID, payload: &sources.SpyDetails{
			Name:             "Celeste",
			Developer:        "Maddy Makes Games",
			ShortDescription: "Climb the mountain.",
			Positive:         50,
			Negative:         0,
		}},
		&stubProvider{id: sources.SteamStoreID, err: errors.NewAPIError("steam_store", 503, "unavailable")},
		&stubProvider{id: sources.ProtonDBID, err: errors.NewAPIError("protondb", 404, "no reports")},
	)

	record, err := New(registry).Aggregate(context.Background(), "504230", "")
	require.NoError(t, err)

	// Name falls back past the empty query to SteamSpy.
	assert.Equal(t, "Celeste", record.Name)
	assert.Equal(t, "Climb the mountain.", record.Description)
	assert.Equal(t, "100%", record.Score)

	// Fields owned by failed sources degrade to unknown, never to zero.
	assert.Equal(t, types.Unknown, record.Release.Display)
	assert.Equal(t, types.Unknown, record.Controller)
	assert.Equal(t, types.Unknown, record.Deck)
	assert.Equal(t, types.Unknown, record.Achievements)
	assert.Nil(t, record.LivePlayers)
}

func TestAggregateAllFailed(t *testing.T) {
	registry := sources.NewRegistry(
		&stubProvider{id: sources.SteamStoreID, err: errors.NewAPIError("steam_store", 500, "down")},
		&stubProvider{id: sources.SteamSpyID, err: errors.NewAPIError("steamspy", 429, "rate limited")},
	)

	record, err := New(registry).Aggregate(context.Background(), "620", "Portal 2")
	require.Nil(t, record)
	require.Error(t, err)

	assert.True(t, errors.IsNoData(err))
	var noData *errors.NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, "620", noData.AppID)
	assert.Len(t, noData.Failures, 2)
}

// Sources that all answer "nothing for this game" leave no usable data
// either, so the aggregation is still a hard no-data error; the failure
// map stays empty because nothing actually errored.
func TestAggregateAllSettledEmpty(t *testing.T) {
	registry := sources.NewRegistry(
		&stubProvider{id: sources.SteamStoreID},
		&stubProvider{id: sources.SteamSpyID},
	)

	record, err := New(registry).Aggregate(context.Background(), "999999", "Unheard Of")
	require.Nil(t, record)
	require.Error(t, err)

	var noData *errors.NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, "999999", noData.AppID)
	assert.Empty(t, noData.Failures)
}

func TestFromBundleFallbackOrder(t *testing.T) {
	bundle := sources.Bundle{
		sources.SteamStoreID: {Status: sources.StatusFulfilled, Payload: &sources.StoreDetails{
			ShortDescription: "Storefront copy.",
			Developers:       []string{"Store Dev"},
		}},
		sources.SteamSpyID: {Status: sources.StatusFulfilled, Payload: &sources.SpyDetails{
			ShortDescription: "Community copy.",
			Developer:        "Spy Dev",
		}},
	}

	record := New(sources.NewRegistry()).FromBundle(context.Background(), "10", "Counter-Strike", bundle)

	// Description prefers the storefront; attribution prefers SteamSpy.
	assert.Equal(t, "Storefront copy.", record.Description)
	assert.Equal(t, "Spy Dev", record.Developer)
}

func TestRefresherRefresh(t *testing.T) {
	refresher := NewRefresher(&stubProvider{
		id:      sources.SteamPlayersID,
		payload: &sources.PlayerCount{Count: 777},
	})

	original := types.GameRecord{AppID: "620", Name: "Portal 2", Price: "$4.99"}
	refreshed, err := refresher.Refresh(context.Background(), original)
	require.NoError(t, err)

	require.NotNil(t, refreshed.LivePlayers)
	assert.Equal(t, 777, *refreshed.LivePlayers)
	assert.Equal(t, "$4.99", refreshed.Price)
	assert.Nil(t, original.LivePlayers)
}

func TestRefresherRunEmitsUntilCanceled(t *testing.T) {
	refresher := NewRefresher(&stubProvider{
		id:      sources.SteamPlayersID,
		payload: &sources.PlayerCount{Count: 5},
	}, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan types.GameRecord, 1)
	done := make(chan struct{})
	go func() {
		refresher.Run(ctx, types.GameRecord{AppID: "620"}, func(r types.GameRecord) {
			select {
			case got <- r:
			default:
			}
		})
		close(done)
	}()

	select {
	case record := <-got:
		require.NotNil(t, record.LivePlayers)
		assert.Equal(t, 5, *record.LivePlayers)
	case <-time.After(time.Second):
		t.Fatal("no refresh emitted")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop on cancel")
	}
}
