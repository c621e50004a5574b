// Package engine implements the claims ledger: farmer identities,
// land-parcel policies, the claim state machine, fraud-signal handling
// and payouts. All state lives in memory behind one mutex; every
// operation runs to completion atomically and either commits fully or
// leaves the ledger untouched. Durability and notifications happen
// outside the ledger through the journal.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// FundTransferor moves value out of the engine to a recipient account.
// The callee is untrusted: it may fail, block, or attempt to re-enter
// the engine. The engine commits its own state before calling it.
type FundTransferor interface {
	Transfer(recipient string, amount uint64) error
}

// Journal receives a mirror of every committed ledger mutation.
// Record must not block; ordering follows commit order.
type Journal interface {
	Record(entry models.JournalEntry)
}

// Config fixes the trusted identities and thresholds at construction.
type Config struct {
	AdminID        string
	OracleID       string
	InvestigatorID string

	// MinimumTrustScore is the blacklisting floor. A farmer whose
	// trust drops below it after a fraud penalty is blacklisted
	// permanently.
	MinimumTrustScore int64
}

// DefaultMinimumTrustScore applies when Config leaves the floor unset.
const DefaultMinimumTrustScore int64 = 500

// Engine is the serialized claims ledger. Construct with New; the zero
// value is not usable.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	paused  bool
	balance uint64

	farmers  map[string]*models.Farmer
	policies map[uint64]*models.Policy
	claims   map[uint64]*models.Claim
	alerts   map[uint64]*models.FraudAlert
	parcels  map[string]uint64 // parcel key -> consuming policy id, permanent

	nextPolicyID uint64
	nextClaimID  uint64
	nextAlertID  uint64

	payoutInFlight bool

	transferor FundTransferor
	journal    Journal
	now        func() time.Time
}

// New builds an empty ledger. transferor is required; journal may be
// nil when no outward mirror is wanted.
func New(cfg Config, transferor FundTransferor, journal Journal) (*Engine, error) {
	if cfg.AdminID == "" || cfg.OracleID == "" || cfg.InvestigatorID == "" {
		return nil, fmt.Errorf("%w: admin, oracle and investigator identities are required", ErrInvalidInput)
	}
	if transferor == nil {
		return nil, fmt.Errorf("%w: fund transferor is required", ErrInvalidInput)
	}
	if cfg.MinimumTrustScore == 0 {
		cfg.MinimumTrustScore = DefaultMinimumTrustScore
	}
	return &Engine{
		cfg:          cfg,
		farmers:      make(map[string]*models.Farmer),
		policies:     make(map[uint64]*models.Policy),
		claims:       make(map[uint64]*models.Claim),
		alerts:       make(map[uint64]*models.FraudAlert),
		parcels:      make(map[string]uint64),
		nextPolicyID: 1,
		nextClaimID:  1,
		nextAlertID:  1,
		transferor:   transferor,
		journal:      journal,
		now:          time.Now,
	}, nil
}

// LoadState seeds the ledger from persisted records, typically at boot
// after a restart. Counters resume past the highest loaded id. It must
// be called before the engine starts serving operations.
func (e *Engine) LoadState(farmers []models.Farmer, policies []models.Policy, claims []models.Claim, alerts []models.FraudAlert, balance uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range farmers {
		f := farmers[i]
		e.farmers[f.ID] = &f
	}
	for i := range policies {
		p := policies[i]
		e.policies[p.ID] = &p
		e.parcels[p.GeoHash] = p.ID
		if p.ID >= e.nextPolicyID {
			e.nextPolicyID = p.ID + 1
		}
	}
	for i := range claims {
		c := claims[i]
		e.claims[c.ID] = &c
		if c.ID >= e.nextClaimID {
			e.nextClaimID = c.ID + 1
		}
	}
	for i := range alerts {
		a := alerts[i]
		e.alerts[a.ID] = &a
		if a.ID >= e.nextAlertID {
			e.nextAlertID = a.ID + 1
		}
	}
	e.balance = balance
}

// Balance returns the value currently held by the engine.
func (e *Engine) Balance() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balance
}

// requireRunningLocked gates every non-administrative mutating entry
// point on the pause switch.
func (e *Engine) requireRunningLocked() error {
	if e.paused {
		return ErrPaused
	}
	return nil
}

// record mirrors a committed mutation to the journal. Callers pass
// snapshot copies, never live map pointers.
func (e *Engine) record(kind models.JournalEntryKind, mutate func(*models.JournalEntry)) {
	if e.journal == nil {
		return
	}
	entry := models.JournalEntry{
		ID:   uuid.New(),
		Kind: kind,
		At:   e.now(),
	}
	mutate(&entry)
	e.journal.Record(entry)
}

// recordBalanceLocked mirrors the held balance after a net change so
// the persistor can restore it at boot.
func (e *Engine) recordBalanceLocked() {
	balance := e.balance
	e.record(models.EntryBalanceChanged, func(entry *models.JournalEntry) {
		entry.Balance = &balance
	})
}

func snapshotFarmer(f *models.Farmer) *models.Farmer {
	cp := *f
	return &cp
}

func snapshotPolicy(p *models.Policy) *models.Policy {
	cp := *p
	return &cp
}

func snapshotClaim(c *models.Claim) *models.Claim {
	cp := *c
	if c.InvestigatorID != nil {
		v := *c.InvestigatorID
		cp.InvestigatorID = &v
	}
	if c.InvestigatedAt != nil {
		v := *c.InvestigatedAt
		cp.InvestigatedAt = &v
	}
	if c.InvestigationReport != nil {
		v := *c.InvestigationReport
		cp.InvestigationReport = &v
	}
	if c.RejectionReason != nil {
		v := *c.RejectionReason
		cp.RejectionReason = &v
	}
	if c.PayoutDate != nil {
		v := *c.PayoutDate
		cp.PayoutDate = &v
	}
	return &cp
}

func snapshotAlert(a *models.FraudAlert) *models.FraudAlert {
	cp := *a
	cp.Indicators = append([]string(nil), a.Indicators...)
	return &cp
}
