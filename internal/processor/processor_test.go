package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/roster-sync/internal/backend"
	"github.com/mauv0809/roster-sync/internal/hashcache"
	"github.com/mauv0809/roster-sync/internal/history"
	"github.com/mauv0809/roster-sync/internal/metrics"
	"github.com/mauv0809/roster-sync/internal/notifier"
	"github.com/mauv0809/roster-sync/internal/pubsub"
	"github.com/mauv0809/roster-sync/internal/roster"
	"github.com/mauv0809/roster-sync/internal/toornament"
	"github.com/mauv0809/roster-sync/internal/weezevent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	gateway    *backend.MockGateway
	weezevent  *weezevent.MockClient
	toornament *toornament.MockClient
	cache      *hashcache.Cache
	store      *history.MockStore
	notifier   *notifier.Mock
	metrics    *metrics.Mock
	pubsub     *pubsub.MockPubSubClient
	processor  *Processor
}

func newFixture(editions []backend.Edition, tournaments map[string][]backend.Tournament) *fixture {
	f := &fixture{
		gateway:    backend.NewMock(),
		weezevent:  weezevent.NewMockClient(),
		toornament: toornament.NewMockClient(),
		cache:      hashcache.New(),
		store:      history.NewMock(),
		notifier:   notifier.NewMock(),
		metrics:    metrics.NewMock(),
		pubsub:     pubsub.NewMock(),
	}
	f.gateway.ListEditionsFunc = func(ctx context.Context) ([]backend.Edition, error) {
		return editions, nil
	}
	f.gateway.ListTournamentsFunc = func(ctx context.Context, editionID string) ([]backend.Tournament, error) {
		return tournaments[editionID], nil
	}
	f.processor = New(f.gateway, f.weezevent, f.toornament, f.cache, f.store, f.notifier, f.metrics, f.pubsub)
	return f
}

// weezeventPayload returns a participant list as the client would decode it.
func weezeventPayload(t *testing.T, raw string) *weezevent.ParticipantList {
	t.Helper()
	var participants []weezevent.Participant
	require.NoError(t, json.Unmarshal([]byte(raw), &participants))
	return &weezevent.ParticipantList{Participants: participants, Raw: json.RawMessage(raw)}
}

const soloParticipants = `[
	{"id_participant": 1, "id_event": 4242, "id_transaction": 10, "answers": [{"label": "Pseudo", "value": "Alice"}]},
	{"id_participant": 2, "id_event": 4242, "id_transaction": 11, "answers": [{"label": "Pseudo", "value": "Bob"}]}
]`

func soloSetup(t *testing.T) *fixture {
	editions := []backend.Edition{{ID: "12", Title: "Spring", EventID: "4242"}}
	tournaments := map[string][]backend.Tournament{
		"12": {{ID: "55", Title: "Solo cup", EditionID: "12", GroupSize: 1, WeezeventTicketIDs: []string{"777"}}},
	}
	f := newFixture(editions, tournaments)
	f.weezevent.GetParticipantsFunc = func(ctx context.Context, eventID string, ticketIDs []string) (*weezevent.ParticipantList, error) {
		return weezeventPayload(t, soloParticipants), nil
	}
	return f
}

func TestRun_PublishesSoloRoster(t *testing.T) {
	f := soloSetup(t)

	summary, err := f.processor.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Published)
	require.Len(t, f.weezevent.GetParticipantsCalls, 1)
	assert.Equal(t, "4242", f.weezevent.GetParticipantsCalls[0].EventID)

	require.Len(t, f.gateway.PublishRosterCalls, 1)
	call := f.gateway.PublishRosterCalls[0]
	assert.Equal(t, "55", call.TournamentID)
	data, err := json.Marshal(call.Roster)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"solo","data":[{"pseudo":"Alice","team":""},{"pseudo":"Bob","team":""}]}`, string(data))

	require.Len(t, f.store.Records, 1)
	assert.Equal(t, history.StatusPublished, f.store.Records[0].Status)
	assert.Equal(t, "weezevent:4242:777", f.store.Records[0].CacheKey)
	assert.Equal(t, 2, f.store.Records[0].Count)

	calls := f.pubsub.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, pubsub.EventRosterPublished, calls[0].Topic)
	assert.Equal(t, 1, f.metrics.TournamentsPublished())
	assert.Equal(t, 1, f.metrics.SyncRuns())
}

func TestRun_UnchangedPayloadIsNotPublishedTwice(t *testing.T) {
	f := soloSetup(t)

	_, err := f.processor.Run(context.Background())
	require.NoError(t, err)
	summary, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, f.gateway.PublishRosterCalls, 1, "second cycle should not publish")
	assert.Len(t, f.weezevent.GetParticipantsCalls, 2, "second cycle still fetches")
	assert.Equal(t, 1, summary.Unchanged)
	assert.Equal(t, 1, f.metrics.TournamentsSkipped())
}

func TestRun_ChangedPayloadIsPublishedAgain(t *testing.T) {
	f := soloSetup(t)
	_, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	f.weezevent.GetParticipantsFunc = func(ctx context.Context, eventID string, ticketIDs []string) (*weezevent.ParticipantList, error) {
		return weezeventPayload(t, `[{"id_participant": 3, "id_event": 4242, "id_transaction": 12, "answers": [{"label": "Pseudo", "value": "Carol"}]}]`), nil
	}
	_, err = f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, f.gateway.PublishRosterCalls, 2)
}

func TestRun_PublishFailureInvalidatesCache(t *testing.T) {
	f := soloSetup(t)
	_, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	f.gateway.PublishRosterFunc = func(ctx context.Context, tournamentID string, r roster.Roster) error {
		return &backend.PublishError{Messages: []string{"backend down"}}
	}
	f.weezevent.GetParticipantsFunc = func(ctx context.Context, eventID string, ticketIDs []string) (*weezevent.ParticipantList, error) {
		return weezeventPayload(t, `[]`), nil
	}
	summary, err := f.processor.Run(context.Background())
	require.NoError(t, err, "publish failures do not fail the cycle")
	assert.Equal(t, 1, summary.Failed)

	entry := f.cache.Entries()["weezevent:4242:777"]
	assert.True(t, entry.Invalidated)

	// Same payload, backend back up: the roster is published again.
	f.gateway.PublishRosterFunc = nil
	summary, err = f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Published)
	assert.Len(t, f.gateway.PublishRosterCalls, 3)

	assert.Equal(t, 1, f.metrics.PublishFailures())
	failures := f.notifier.PublishFailures()
	require.Len(t, failures, 1)
	assert.Equal(t, "55", failures[0].TournamentID)
	assert.ErrorIs(t, failures[0].Err, backend.ErrPublishRejected)

	require.Len(t, f.store.Records, 3)
	assert.Equal(t, history.StatusFailed, f.store.Records[1].Status)
	assert.Contains(t, f.store.Records[1].Error, "backend down")
	assert.Equal(t, pubsub.EventPublishFailed, f.pubsub.Calls()[1].Topic)
}

func TestRun_ConsecutiveFailuresKeepRetrying(t *testing.T) {
	f := soloSetup(t)
	f.gateway.PublishRosterFunc = func(ctx context.Context, tournamentID string, r roster.Roster) error {
		return errors.New("connection reset")
	}

	for i := 0; i < 3; i++ {
		_, err := f.processor.Run(context.Background())
		require.NoError(t, err)
	}

	assert.Len(t, f.gateway.PublishRosterCalls, 3)
	assert.Equal(t, 3, f.metrics.PublishFailures())
}

func TestRun_TeamRosterFromToornament(t *testing.T) {
	editions := []backend.Edition{{ID: "12"}}
	tournaments := map[string][]backend.Tournament{
		"12": {{ID: "60", Title: "Bracket", GroupSize: 2, ToornamentID: "3810"}},
	}
	f := newFixture(editions, tournaments)
	f.toornament.GetParticipantsFunc = func(ctx context.Context, tournamentID string) (*toornament.ParticipantList, error) {
		return &toornament.ParticipantList{
			Participants: []toornament.Participant{
				{ID: "t1", Name: "Foxes", Lineup: []toornament.LineupMember{{Name: "A"}, {Name: "B"}, {Name: "C"}}},
				{ID: "t2", Name: "Slot Réservé #2", Lineup: []toornament.LineupMember{{Name: "X"}}},
			},
			Raw: json.RawMessage(`[{"id":"t1"},{"id":"t2"}]`),
		}, nil
	}

	_, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"3810"}, f.toornament.GetParticipantsCalls)
	require.Len(t, f.gateway.PublishRosterCalls, 1)
	team, ok := f.gateway.PublishRosterCalls[0].Roster.(roster.Team)
	require.True(t, ok)
	assert.Equal(t, []roster.TeamEntry{
		{Name: "Foxes", Players: []string{"A", "B"}},
		{Name: "Foxes", Players: []string{"C"}},
	}, team.Entries)
	assert.Contains(t, f.cache.Entries(), "toornament:3810")
}

func TestRun_SkipsExpiredEditions(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	editions := []backend.Edition{{ID: "old", EndDate: &past}}
	f := newFixture(editions, nil)

	summary, err := f.processor.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Expired)
	assert.Empty(t, f.gateway.ListTournamentsCalls)
}

func TestRun_ProviderSelectionAndIgnoredTournaments(t *testing.T) {
	editions := []backend.Edition{{ID: "12"}}
	tournaments := map[string][]backend.Tournament{
		"12": {
			{ID: "1", GroupSize: 1, WeezeventTicketIDs: []string{"9"}, ToornamentID: "3810"},
			{ID: "2", GroupSize: 1, OtherProviderID: "x"},
			{ID: "3", GroupSize: 1},
			{ID: "4", GroupSize: 0, ToornamentID: "3811"},
		},
	}
	f := newFixture(editions, tournaments)

	summary, err := f.processor.Run(context.Background())

	require.NoError(t, err)
	// Weezevent wins but the edition has no event id, so nothing is fetched.
	assert.Empty(t, f.weezevent.GetParticipantsCalls)
	assert.Empty(t, f.toornament.GetParticipantsCalls)
	assert.Empty(t, f.gateway.PublishRosterCalls)
	assert.Equal(t, 4, summary.Ignored)
}

func TestRun_FetchFailureDoesNotStopOtherTournaments(t *testing.T) {
	editions := []backend.Edition{{ID: "12", EventID: "4242"}, {ID: "13"}}
	tournaments := map[string][]backend.Tournament{
		"12": {{ID: "1", GroupSize: 1, WeezeventTicketIDs: []string{"9"}}},
		"13": {{ID: "2", GroupSize: 1, ToornamentID: "3810"}},
	}
	f := newFixture(editions, tournaments)
	f.weezevent.GetParticipantsFunc = func(ctx context.Context, eventID string, ticketIDs []string) (*weezevent.ParticipantList, error) {
		return nil, weezevent.ErrMissingParticipants
	}

	summary, err := f.processor.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Published)
	require.Len(t, f.gateway.PublishRosterCalls, 1)
	assert.Equal(t, "2", f.gateway.PublishRosterCalls[0].TournamentID)
	assert.NotContains(t, f.cache.Entries(), "weezevent:4242:9")
	assert.Equal(t, 1, f.metrics.TournamentsFailed())
}

func TestRun_ListingFailureAbortsCycle(t *testing.T) {
	t.Run("editions", func(t *testing.T) {
		f := newFixture(nil, nil)
		f.gateway.ListEditionsFunc = func(ctx context.Context) ([]backend.Edition, error) {
			return nil, errors.New("timeout")
		}

		_, err := f.processor.Run(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrListing)
		assert.Equal(t, 1, f.metrics.SyncFailures())
		assert.Len(t, f.notifier.SendSyncFailureCalls, 1)
	})

	t.Run("tournaments", func(t *testing.T) {
		f := newFixture([]backend.Edition{{ID: "12"}, {ID: "13"}}, nil)
		f.gateway.ListTournamentsFunc = func(ctx context.Context, editionID string) ([]backend.Tournament, error) {
			return nil, errors.New("graphql errors: boom")
		}

		_, err := f.processor.Run(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrListing)
		assert.Equal(t, []string{"12"}, f.gateway.ListTournamentsCalls, "second edition is never listed")
	})
}

func TestRun_CancelledContextStopsBetweenTournaments(t *testing.T) {
	f := soloSetup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.processor.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.gateway.PublishRosterCalls)
}

func TestRun_SideChannelFailuresDoNotAffectCache(t *testing.T) {
	f := soloSetup(t)
	f.pubsub.SendMessageFunc = func(topic pubsub.EventType, data any) error {
		return errors.New("pubsub unavailable")
	}
	f.store.RecordPublishFunc = func(rec history.Record) (history.Record, error) {
		return history.Record{}, errors.New("disk full")
	}

	summary, err := f.processor.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Published)
	assert.False(t, f.cache.ShouldProcess("weezevent:4242:777", []byte(soloParticipants)))
}

func TestSelectProvider(t *testing.T) {
	assert.Equal(t, ProviderWeezevent, SelectProvider(backend.Tournament{WeezeventTicketIDs: []string{"1"}, ToornamentID: "2", OtherProviderID: "3"}))
	assert.Equal(t, ProviderToornament, SelectProvider(backend.Tournament{ToornamentID: "2", OtherProviderID: "3"}))
	assert.Equal(t, ProviderOther, SelectProvider(backend.Tournament{OtherProviderID: "3"}))
	assert.Equal(t, ProviderNone, SelectProvider(backend.Tournament{}))
}
