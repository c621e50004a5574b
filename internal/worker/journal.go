package worker

import (
	"log/slog"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// ChannelJournal buffers journal entries between the engine and the
// persistor. Record never blocks the ledger: when the buffer is full
// the entry is dropped with a warning. Entries carry full-row
// snapshots, so a later entry for the same record repairs the mirror.
type ChannelJournal struct {
	entries chan models.JournalEntry
	dropped int64
}

func NewChannelJournal(buffer int) *ChannelJournal {
	if buffer <= 0 {
		buffer = 1024
	}
	return &ChannelJournal{entries: make(chan models.JournalEntry, buffer)}
}

// Record implements engine.Journal.
func (j *ChannelJournal) Record(entry models.JournalEntry) {
	select {
	case j.entries <- entry:
	default:
		j.dropped++
		slog.Warn("journal buffer full, entry dropped",
			"kind", entry.Kind,
			"entry_id", entry.ID,
			"dropped_total", j.dropped,
		)
	}
}

// Entries exposes the drain side for the persistor.
func (j *ChannelJournal) Entries() <-chan models.JournalEntry {
	return j.entries
}

// Close stops the stream once the engine no longer records.
func (j *ChannelJournal) Close() {
	close(j.entries)
}
