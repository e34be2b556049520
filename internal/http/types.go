package http

import (
	"net/http"

	"github.com/mauv0809/roster-sync/internal/hashcache"
	"github.com/mauv0809/roster-sync/internal/history"
	"github.com/mauv0809/roster-sync/internal/scheduler"
)

// Cache is the part of the hash cache exposed over HTTP.
type Cache interface {
	Entries() map[string]hashcache.Entry
	Invalidate(key string)
}

// Trigger starts sync cycles on demand and reports on the last one.
type Trigger interface {
	RunNow() error
	Status() scheduler.Status
}

type Server struct {
	Cache          Cache
	History        history.Store
	Trigger        Trigger
	MetricsHandler http.Handler
	Router         *http.ServeMux
}

// healthResponse is the body of /health.
type healthResponse struct {
	Status    string           `json:"status"`
	LastCycle scheduler.Status `json:"last_cycle"`
}
