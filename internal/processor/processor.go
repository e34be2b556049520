package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/roster-sync/internal/backend"
	"github.com/mauv0809/roster-sync/internal/hashcache"
	"github.com/mauv0809/roster-sync/internal/history"
	"github.com/mauv0809/roster-sync/internal/metrics"
	"github.com/mauv0809/roster-sync/internal/notifier"
	"github.com/mauv0809/roster-sync/internal/pubsub"
	"github.com/mauv0809/roster-sync/internal/roster"
	"github.com/mauv0809/roster-sync/internal/toornament"
	"github.com/mauv0809/roster-sync/internal/weezevent"
)

// New creates a new Processor.
func New(
	gateway backend.Gateway,
	wz weezevent.WeezeventClient,
	to toornament.ToornamentClient,
	cache Cache,
	store Store,
	notifier Notifier,
	metrics metrics.Metrics,
	pubsub pubsub.PubSubClient,
) *Processor {
	return &Processor{
		backend:    gateway,
		weezevent:  wz,
		toornament: to,
		cache:      cache,
		store:      store,
		notifier:   notifier,
		pubsub:     pubsub,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Run executes one sync cycle. Editions and tournaments are processed one at
// a time; a failing tournament is logged and the cycle moves on. Only listing
// failures and context cancellation end the cycle early.
func (p *Processor) Run(ctx context.Context) (summary Summary, err error) {
	start := p.now()
	p.metrics.IncSyncRuns()
	defer func() {
		summary.Duration = p.now().Sub(start)
		p.metrics.ObserveSyncDuration(summary.Duration.Seconds())
	}()

	log.Info("Starting roster sync...")
	editions, err := p.backend.ListEditions(ctx)
	if err != nil {
		return summary, p.listingFailed(fmt.Errorf("%w: editions: %w", ErrListing, err))
	}
	summary.Editions = len(editions)

	for _, edition := range editions {
		if edition.Expired(start) {
			log.Info("Skipping expired edition", "editionID", edition.ID, "title", edition.Title, "endDate", edition.EndDate)
			summary.Expired++
			continue
		}

		tournaments, err := p.backend.ListTournaments(ctx, edition.ID)
		if err != nil {
			return summary, p.listingFailed(fmt.Errorf("%w: tournaments of edition %s: %w", ErrListing, edition.ID, err))
		}
		log.Info("Processing edition", "editionID", edition.ID, "title", edition.Title, "tournaments", len(tournaments))

		for _, t := range tournaments {
			if err := ctx.Err(); err != nil {
				log.Warn("Sync cycle interrupted", "error", err)
				return summary, err
			}
			summary.Tournaments++
			summary.add(p.processTournament(ctx, edition, t))
		}
	}

	log.Info("Roster sync finished.",
		"published", summary.Published,
		"unchanged", summary.Unchanged,
		"ignored", summary.Ignored,
		"failed", summary.Failed,
	)
	return summary, nil
}

func (p *Processor) listingFailed(err error) error {
	p.metrics.IncSyncFailures()
	log.Error("Sync cycle aborted", "error", err)
	if !errors.Is(err, context.Canceled) {
		if nerr := p.notifier.SendSyncFailure(err); nerr != nil {
			log.Warn("Failed to send sync failure alert", "error", nerr)
		}
	}
	return err
}

// SelectProvider picks the registration source of t. Weezevent wins over
// Toornament, which wins over the placeholder provider.
func SelectProvider(t backend.Tournament) Provider {
	switch {
	case len(t.WeezeventTicketIDs) > 0:
		return ProviderWeezevent
	case t.ToornamentID != "":
		return ProviderToornament
	case t.OtherProviderID != "":
		return ProviderOther
	default:
		return ProviderNone
	}
}

func (p *Processor) processTournament(ctx context.Context, edition backend.Edition, t backend.Tournament) outcome {
	logger := log.With("tournamentID", t.ID, "title", t.Title)

	if t.GroupSize <= 0 {
		logger.Warn("Tournament has no team size, skipping")
		return outcomeIgnored
	}

	provider := SelectProvider(t)
	var (
		data *fetched
		err  error
	)
	switch provider {
	case ProviderWeezevent:
		if edition.EventID == "" {
			logger.Warn("Edition has no Weezevent event id, skipping", "editionID", edition.ID)
			return outcomeIgnored
		}
		data, err = p.fetchWeezevent(ctx, edition.EventID, t.WeezeventTicketIDs)
	case ProviderToornament:
		data, err = p.fetchToornament(ctx, t.ToornamentID)
	case ProviderOther:
		logger.Info("Tournament uses a provider without adapter, skipping", "providerID", t.OtherProviderID)
		return outcomeIgnored
	default:
		logger.Warn("Tournament has no provider identifier, skipping")
		return outcomeIgnored
	}
	logger = logger.With("provider", provider)
	if err != nil {
		logger.Error("Failed to fetch participants", "error", err)
		p.metrics.IncTournamentsFailed()
		return outcomeFailed
	}

	if !p.cache.ShouldProcess(data.key, data.payload) {
		logger.Info("Participants unchanged, skipping", "key", data.key)
		p.metrics.IncTournamentsSkipped()
		return outcomeUnchanged
	}

	r, err := roster.Build(data.records, t.GroupSize)
	if err != nil {
		logger.Error("Failed to build roster", "error", err)
		p.metrics.IncTournamentsFailed()
		return outcomeFailed
	}

	rec := history.Record{
		TournamentID:    t.ID,
		TournamentTitle: t.Title,
		Provider:        string(provider),
		CacheKey:        data.key,
		Hash:            hashcache.Hash(data.payload),
		Count:           r.Len(),
	}

	if err := p.backend.PublishRoster(ctx, t.ID, r); err != nil {
		p.cache.Invalidate(data.key)
		p.metrics.IncPublishFailures()
		p.metrics.IncTournamentsFailed()
		logger.Error("Failed to publish roster", "error", err, "count", r.Len())

		rec.Status = history.StatusFailed
		rec.Error = err.Error()
		rec = p.record(rec)
		p.announceFailure(edition, t, rec, err)
		return outcomeFailed
	}

	p.cache.Commit(data.key, data.payload)
	p.metrics.IncTournamentsPublished()
	logger.Info("Roster published", "kind", r.Kind(), "count", r.Len())

	rec.Status = history.StatusPublished
	rec = p.record(rec)
	p.announcePublished(edition, r, rec)
	return outcomePublished
}

func (p *Processor) fetchWeezevent(ctx context.Context, eventID string, ticketIDs []string) (*fetched, error) {
	list, err := p.weezevent.GetParticipants(ctx, eventID, ticketIDs)
	if err != nil {
		return nil, err
	}
	return &fetched{
		key:     hashcache.WeezeventKey(eventID, ticketIDs),
		payload: list.Raw,
		records: weezevent.Normalize(eventID, list.Participants),
	}, nil
}

func (p *Processor) fetchToornament(ctx context.Context, tournamentID string) (*fetched, error) {
	list, err := p.toornament.GetParticipants(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return &fetched{
		key:     hashcache.ToornamentKey(tournamentID),
		payload: list.Raw,
		records: toornament.Normalize(list.Participants),
	}, nil
}

// record stores rec in the history. Failures are logged only.
func (p *Processor) record(rec history.Record) history.Record {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = p.now()
	}
	stored, err := p.store.RecordPublish(rec)
	if err != nil {
		log.Error("Failed to record publish attempt", "error", err, "tournamentID", rec.TournamentID)
		return rec
	}
	return stored
}

func (p *Processor) announcePublished(edition backend.Edition, r roster.Roster, rec history.Record) {
	event := pubsub.RosterPublished{
		TournamentID: rec.TournamentID,
		EditionID:    edition.ID,
		Provider:     rec.Provider,
		Kind:         string(r.Kind()),
		Count:        rec.Count,
		Hash:         rec.Hash,
		PublishedAt:  rec.CreatedAt.Unix(),
	}
	if err := p.pubsub.SendMessage(pubsub.EventRosterPublished, event); err != nil {
		log.Warn("Failed to send roster published event", "error", err, "tournamentID", rec.TournamentID)
	}
}

func (p *Processor) announceFailure(edition backend.Edition, t backend.Tournament, rec history.Record, cause error) {
	failure := notifier.PublishFailure{
		TournamentID:    t.ID,
		TournamentTitle: t.Title,
		Provider:        rec.Provider,
		Count:           rec.Count,
		Err:             cause,
		At:              rec.CreatedAt,
	}
	if err := p.notifier.SendPublishFailure(failure); err != nil {
		log.Warn("Failed to send publish failure alert", "error", err, "tournamentID", t.ID)
	}

	event := pubsub.PublishFailed{
		TournamentID: t.ID,
		EditionID:    edition.ID,
		Provider:     rec.Provider,
		Error:        cause.Error(),
		FailedAt:     rec.CreatedAt.Unix(),
	}
	if err := p.pubsub.SendMessage(pubsub.EventPublishFailed, event); err != nil {
		log.Warn("Failed to send publish failure event", "error", err, "tournamentID", t.ID)
	}
}
