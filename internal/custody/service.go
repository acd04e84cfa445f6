// Package custody orchestrates custody actions: it updates item state, records
// outbox events and issues, and persists the resulting snapshot.
package custody

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partcustody/internal/orders"
	"github.com/angelmondragon/partcustody/internal/persistence"
	"github.com/angelmondragon/partcustody/pkg/enums"
	pkgerrors "github.com/angelmondragon/partcustody/pkg/errors"
	"github.com/angelmondragon/partcustody/pkg/logger"
	"github.com/angelmondragon/partcustody/pkg/metrics"
	"github.com/angelmondragon/partcustody/pkg/outbox"
	"github.com/angelmondragon/partcustody/pkg/types"
)

// DefaultReporter is recorded on issues when the caller does not identify itself.
const DefaultReporter = "Driver"

type snapshotStore interface {
	Load(ctx context.Context) (persistence.Snapshot, error)
	Save(ctx context.Context, snap persistence.Snapshot) error
	Reset(ctx context.Context) error
}

// Service is the custody orchestrator.
type Service interface {
	RecordItemAction(ctx context.Context, input ItemActionInput) (ActionResult, error)
	RecordOrderAction(ctx context.Context, input OrderActionInput) (ActionResult, error)
	ReportIssue(ctx context.Context, input ReportIssueInput) (IssueResult, error)
	Sync(ctx context.Context) SyncResult

	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Reset(ctx context.Context) error

	Orders(filter enums.OrderFilter) []orders.Order
	Order(orderID string) (orders.Order, bool)
	Events() []outbox.PartEvent
	Issues() []outbox.ReportedIssue
	IssueForOrder(orderID string) (outbox.ReportedIssue, bool)
	Summary() Summary
}

// ServiceParams wires the orchestrator.
type ServiceParams struct {
	Snapshots snapshotStore
	Logger    *logger.Logger
	Metrics   *metrics.CustodyMetrics
	Reporter  string
	Now       func() time.Time
	NewID     func() string
}

type service struct {
	mu        sync.RWMutex
	store     *orders.Store
	log       *outbox.Log
	snapshots snapshotStore
	logg      *logger.Logger
	metrics   *metrics.CustodyMetrics
	reporter  string
	now       func() time.Time
	newID     func() string

	// fallback is set while memory holds the seed because the last Load failed.
	// Persisted blobs are never overwritten from that state.
	fallback bool
}

// NewService builds the orchestrator holding the seed dataset. Call Load to pick up
// persisted state.
func NewService(params ServiceParams) (Service, error) {
	if params.Snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reporter == "" {
		params.Reporter = DefaultReporter
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.NewID == nil {
		params.NewID = uuid.NewString
	}
	svc := &service{
		store:     orders.NewStore(orders.Seed()),
		log:       outbox.NewLog(params.Logger),
		snapshots: params.Snapshots,
		logg:      params.Logger,
		metrics:   params.Metrics,
		reporter:  params.Reporter,
		now:       params.Now,
		newID:     params.NewID,
	}
	svc.refreshPending()
	return svc, nil
}

// Load replaces in-memory state with the persisted snapshot. On failure the seed
// dataset with empty logs is installed and the error is returned for logging.
func (s *service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.snapshots.Load(ctx)
	s.install(snap)
	s.fallback = err != nil
	if err != nil {
		s.metrics.IncPersistenceFailure("load")
		s.logg.Error(s.logg.WithField(ctx, "error_dump", pkgerrors.Dump(err)), "snapshot load failed, using seed data", err)
		return err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"orders": len(snap.Orders),
		"events": len(snap.Events),
		"issues": len(snap.Issues),
	}), "snapshot loaded")
	return nil
}

// Save writes the current state. In-memory state is untouched on failure.
func (s *service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, "save")
}

// Reset clears persisted state and reinstalls the seed dataset. Memory is reset even
// when removing the blobs fails.
func (s *service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.snapshots.Reset(ctx)
	s.store.SetOrders(orders.Seed())
	s.log.Reset()
	s.refreshPending()
	s.fallback = false
	if err != nil {
		s.metrics.IncPersistenceFailure("reset")
		s.logg.Error(s.logg.WithField(ctx, "error_dump", pkgerrors.Dump(err)), "snapshot reset failed", err)
		return err
	}
	s.logg.Info(ctx, "custody data reset to seed")
	return nil
}

// Sync marks every pending event and issue as uploaded, then persists.
func (s *service) Sync(ctx context.Context) SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restore(ctx)

	counts := s.log.MarkAllSynced()
	s.metrics.AddSynced(enums.OutboxKindEvent, counts.Events)
	s.metrics.AddSynced(enums.OutboxKindIssue, counts.Issues)

	result := SyncResult{Events: counts.Events, Issues: counts.Issues}
	result.Persisted = s.save(ctx, "sync") == nil
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"events_synced": counts.Events,
		"issues_synced": counts.Issues,
	}), "outbox synced")
	return result
}

func (s *service) Orders(filter enums.OrderFilter) []orders.Order {
	return s.store.Filter(filter)
}

func (s *service) Order(orderID string) (orders.Order, bool) {
	return s.store.Order(orderID)
}

func (s *service) Events() []outbox.PartEvent {
	return s.log.Events()
}

func (s *service) Issues() []outbox.ReportedIssue {
	return s.log.Issues()
}

func (s *service) IssueForOrder(orderID string) (outbox.ReportedIssue, bool) {
	return s.log.IssueForOrder(orderID)
}

func (s *service) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := s.log.Pending()
	return Summary{
		PendingEvents: pending.Events,
		PendingIssues: pending.Issues,
		Orders:        s.store.CountByStatus(),
	}
}

func (s *service) install(snap persistence.Snapshot) {
	s.store.SetOrders(snap.Orders)
	s.log.Replace(snap.Events, snap.Issues)
	s.refreshPending()
}

// restore retries Load while running on fallback state. Events and issues recorded
// since the failed load are replayed on top of the persisted snapshot. Callers hold s.mu.
func (s *service) restore(ctx context.Context) bool {
	if !s.fallback {
		return true
	}
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error_dump", pkgerrors.Dump(err)), "snapshot still unavailable, keeping fallback state")
		return false
	}

	events := s.log.Events()
	issues := s.log.Issues()
	s.install(snap)
	for _, event := range events {
		s.replay(event)
		s.log.AppendEvent(ctx, event)
	}
	for _, issue := range issues {
		s.log.AppendIssue(ctx, issue)
	}
	s.refreshPending()
	s.fallback = false

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"orders":          len(snap.Orders),
		"events_replayed": len(events),
		"issues_replayed": len(issues),
	}), "snapshot restored after load failure")
	return true
}

// replay applies an already recorded event's item changes to the current orders.
func (s *service) replay(event outbox.PartEvent) {
	status := event.Header().Type.ItemStatus()
	switch e := event.(type) {
	case outbox.SingleItemEvent:
		s.store.UpdateItemStatus(e.PartOrderItemID, status)
	case outbox.OrderLevelEvent:
		order, ok := s.store.Order(e.PartOrderID)
		if !ok {
			return
		}
		selected := make([]string, 0, len(e.PartOrderItemIDs))
		for _, itemID := range e.PartOrderItemIDs {
			if order.HasItem(itemID) {
				selected = append(selected, itemID)
			}
		}
		s.store.UpdateItemStatuses(cascade(order, selected, e.Type))
	}
}

// save persists the current state. Callers hold s.mu so snapshots land in order.
// Nothing is written while the persisted snapshot could not be loaded.
func (s *service) save(ctx context.Context, operation string) error {
	if !s.restore(ctx) {
		err := pkgerrors.New(pkgerrors.CodeDependency, "persisted snapshot not loaded, write refused")
		s.metrics.IncPersistenceFailure(operation)
		s.logg.Error(s.logg.WithField(ctx, "operation", operation), "snapshot save skipped", err)
		return err
	}
	snap := persistence.Snapshot{
		Orders: s.store.Orders(),
		Events: s.log.Events(),
		Issues: s.log.Issues(),
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.metrics.IncPersistenceFailure(operation)
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"operation":  operation,
			"error_dump": pkgerrors.Dump(err),
		})
		s.logg.Error(logCtx, "snapshot save failed", err)
		return err
	}
	return nil
}

func (s *service) refreshPending() {
	pending := s.log.Pending()
	s.metrics.SetPending(enums.OutboxKindEvent, pending.Events)
	s.metrics.SetPending(enums.OutboxKindIssue, pending.Issues)
}

func (s *service) timestamp() types.UnixMillis {
	return types.NewUnixMillis(s.now())
}
