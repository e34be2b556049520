package processor

import (
	"github.com/mauv0809/roster-sync/internal/history"
	"github.com/mauv0809/roster-sync/internal/notifier"
)

// Cache defines the change detection operations required by the processor.
type Cache interface {
	ShouldProcess(key string, payload []byte) bool
	Commit(key string, payload []byte)
	Invalidate(key string)
}

// Store defines the history operations required by the processor.
type Store interface {
	RecordPublish(rec history.Record) (history.Record, error)
}

// Notifier defines the alerting operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
