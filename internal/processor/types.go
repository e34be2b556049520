package processor

import (
	"errors"
	"time"

	"github.com/mauv0809/roster-sync/internal/backend"
	"github.com/mauv0809/roster-sync/internal/metrics"
	"github.com/mauv0809/roster-sync/internal/pubsub"
	"github.com/mauv0809/roster-sync/internal/roster"
	"github.com/mauv0809/roster-sync/internal/toornament"
	"github.com/mauv0809/roster-sync/internal/weezevent"
)

// ErrListing wraps failures to enumerate editions or tournaments. It aborts the cycle.
var ErrListing = errors.New("failed to list backend content")

// Provider identifies the registration source of a tournament.
type Provider string

const (
	ProviderNone       Provider = ""
	ProviderWeezevent  Provider = "weezevent"
	ProviderToornament Provider = "toornament"
	// ProviderOther is selectable in the backend but has no adapter.
	ProviderOther Provider = "other"
)

// outcome is how one tournament's pipeline resolved.
type outcome int

const (
	outcomePublished outcome = iota
	outcomeUnchanged
	outcomeIgnored
	outcomeFailed
)

// Summary counts what a cycle did.
type Summary struct {
	Editions    int           `json:"editions"`
	Expired     int           `json:"expired"`
	Tournaments int           `json:"tournaments"`
	Published   int           `json:"published"`
	Unchanged   int           `json:"unchanged"`
	Ignored     int           `json:"ignored"`
	Failed      int           `json:"failed"`
	Duration    time.Duration `json:"duration_ns"`
}

func (s *Summary) add(o outcome) {
	switch o {
	case outcomePublished:
		s.Published++
	case outcomeUnchanged:
		s.Unchanged++
	case outcomeIgnored:
		s.Ignored++
	case outcomeFailed:
		s.Failed++
	}
}

// fetched is the raw payload of a provider together with its normalized records.
type fetched struct {
	key     string
	payload []byte
	records []roster.Participant
}

// Processor runs sync cycles. One Processor must not run two cycles at once.
type Processor struct {
	backend    backend.Gateway
	weezevent  weezevent.WeezeventClient
	toornament toornament.ToornamentClient
	cache      Cache
	store      Store
	notifier   Notifier
	pubsub     pubsub.PubSubClient
	metrics    metrics.Metrics
	now        func() time.Time
}
