package worker

import (
	"context"
	"log/slog"

	"github.com/jayanth2212/AgriSure/internal/event"
	"github.com/jayanth2212/AgriSure/internal/models"
)

// LedgerStore is the persistence surface the persistor writes through.
// Implemented for Postgres by PostgresStore; tests substitute a fake.
type LedgerStore interface {
	UpsertFarmer(ctx context.Context, farmer *models.Farmer) error
	UpsertPolicy(ctx context.Context, policy *models.Policy) error
	UpsertClaim(ctx context.Context, claim *models.Claim) error
	InsertFraudAlert(ctx context.Context, alert *models.FraudAlert) error
	SetBalance(ctx context.Context, balance uint64) error
}

// ClaimNotifier publishes claim lifecycle notifications. Optional.
type ClaimNotifier interface {
	PublishClaimEvent(ctx context.Context, e event.ClaimEventModel) error
}

// Persistor drains the engine journal and mirrors each committed
// mutation into the durable store, publishing lifecycle notifications
// along the way. It never mutates ledger state.
type Persistor struct {
	journal  *ChannelJournal
	store    LedgerStore
	notifier ClaimNotifier
}

func NewPersistor(journal *ChannelJournal, store LedgerStore, notifier ClaimNotifier) *Persistor {
	return &Persistor{journal: journal, store: store, notifier: notifier}
}

// Run processes entries until the context is cancelled or the journal
// is closed. Persistence failures are logged and skipped; the boot-time
// state reload reconciles from whatever the store last saw.
func (p *Persistor) Run(ctx context.Context) {
	slog.Info("ledger persistor started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("ledger persistor stopped", "reason", ctx.Err())
			return
		case entry, ok := <-p.journal.Entries():
			if !ok {
				slog.Info("ledger persistor stopped", "reason", "journal closed")
				return
			}
			p.apply(ctx, entry)
		}
	}
}

func (p *Persistor) apply(ctx context.Context, entry models.JournalEntry) {
	if entry.Farmer != nil {
		if err := p.store.UpsertFarmer(ctx, entry.Farmer); err != nil {
			slog.Error("failed to persist farmer", "entry_id", entry.ID, "kind", entry.Kind, "error", err)
		}
	}
	if entry.Policy != nil {
		if err := p.store.UpsertPolicy(ctx, entry.Policy); err != nil {
			slog.Error("failed to persist policy", "entry_id", entry.ID, "kind", entry.Kind, "error", err)
		}
	}
	if entry.Claim != nil {
		if err := p.store.UpsertClaim(ctx, entry.Claim); err != nil {
			slog.Error("failed to persist claim", "entry_id", entry.ID, "kind", entry.Kind, "error", err)
		}
		p.notify(ctx, entry)
	}
	if entry.Alert != nil {
		if err := p.store.InsertFraudAlert(ctx, entry.Alert); err != nil {
			slog.Error("failed to persist fraud alert", "entry_id", entry.ID, "kind", entry.Kind, "error", err)
		}
	}
	if entry.Balance != nil {
		if err := p.store.SetBalance(ctx, *entry.Balance); err != nil {
			slog.Error("failed to persist balance", "entry_id", entry.ID, "error", err)
		}
	}
}

func (p *Persistor) notify(ctx context.Context, entry models.JournalEntry) {
	if p.notifier == nil {
		return
	}
	switch entry.Kind {
	case models.EntryClaimSubmitted, models.EntryClaimUnderReview,
		models.EntryClaimApproved, models.EntryClaimRejected,
		models.EntryClaimFraudulent, models.EntryClaimPaid:
	default:
		return
	}
	claim := entry.Claim
	err := p.notifier.PublishClaimEvent(ctx, event.ClaimEventModel{
		ClaimID:  claim.ID,
		PolicyID: claim.PolicyID,
		FarmerID: claim.FarmerID,
		Status:   string(claim.Status),
		Amount:   claim.PayoutAmount,
	})
	if err != nil {
		slog.Error("failed to publish claim event", "claim_id", claim.ID, "error", err)
	}
}
