// Package persistence maps the in-memory custody state onto three JSON blobs in a kv.Store.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/partcustody/internal/orders"
	pkgerrors "github.com/angelmondragon/partcustody/pkg/errors"
	"github.com/angelmondragon/partcustody/pkg/kv"
	"github.com/angelmondragon/partcustody/pkg/logger"
	"github.com/angelmondragon/partcustody/pkg/outbox"
)

// Blob keys. They match the keys earlier builds of the app wrote, so existing stores load.
const (
	KeyOrders         = "orders"
	KeyOutboxEvents   = "outboxEvents"
	KeyReportedIssues = "reportedIssues"
)

// Keys lists every blob the bridge owns.
func Keys() []string {
	return []string{KeyOrders, KeyOutboxEvents, KeyReportedIssues}
}

// Snapshot is the full persisted state.
type Snapshot struct {
	Orders []orders.Order
	Events []outbox.PartEvent
	Issues []outbox.ReportedIssue
}

// Fallback is the state used on first launch or when stored blobs cannot be read.
func Fallback() Snapshot {
	return Snapshot{
		Orders: orders.Seed(),
		Events: []outbox.PartEvent{},
		Issues: []outbox.ReportedIssue{},
	}
}

// Bridge loads and saves snapshots.
type Bridge struct {
	store kv.Store
	logg  *logger.Logger
}

// NewBridge wires the bridge to a blob store. logg may be nil.
func NewBridge(store kv.Store, logg *logger.Logger) *Bridge {
	return &Bridge{store: store, logg: logg}
}

// Driver reports the backing store's driver when it exposes one.
func (b *Bridge) Driver() string {
	return kv.DriverOf(b.store).String()
}

// Load reads the three blobs concurrently. Missing blobs fall back to the seed orders
// and empty logs. Any read or decode failure returns the whole fallback snapshot
// alongside the error, so the result is always usable.
func (b *Bridge) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var ordersFound bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var list []orders.Order
		found, err := b.read(gctx, KeyOrders, &list)
		if err != nil {
			return err
		}
		snap.Orders, ordersFound = list, found
		return nil
	})
	g.Go(func() error {
		var events outbox.Events
		if _, err := b.read(gctx, KeyOutboxEvents, &events); err != nil {
			return err
		}
		snap.Events = []outbox.PartEvent(events)
		return nil
	})
	g.Go(func() error {
		var issues []outbox.ReportedIssue
		if _, err := b.read(gctx, KeyReportedIssues, &issues); err != nil {
			return err
		}
		snap.Issues = issues
		return nil
	})

	if err := g.Wait(); err != nil {
		return Fallback(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snapshot")
	}

	if !ordersFound {
		snap.Orders = orders.Seed()
	}
	if snap.Orders == nil {
		snap.Orders = []orders.Order{}
	}
	if snap.Events == nil {
		snap.Events = []outbox.PartEvent{}
	}
	if snap.Issues == nil {
		snap.Issues = []outbox.ReportedIssue{}
	}
	return snap, nil
}

// Save writes all three blobs unconditionally. Failures are aggregated; blobs that
// did write stay written.
func (b *Bridge) Save(ctx context.Context, snap Snapshot) error {
	ordersBody, err := json.Marshal(nonNilOrders(snap.Orders))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode orders")
	}
	eventsBody, err := json.Marshal(outbox.Events(nonNilEvents(snap.Events)))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode outbox events")
	}
	issuesBody, err := json.Marshal(nonNilIssues(snap.Issues))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode reported issues")
	}

	keys := Keys()
	bodies := [][]byte{ordersBody, eventsBody, issuesBody}
	// Each write reports into its own slot so one failure does not hide the others.
	errs := make([]error, len(keys))
	var g errgroup.Group
	for i := range keys {
		g.Go(func() error {
			if err := b.store.Set(ctx, keys[i], bodies[i]); err != nil {
				errs[i] = fmt.Errorf("write %s: %w", keys[i], err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save snapshot")
	}
	return nil
}

// Reset removes every blob the bridge owns.
func (b *Bridge) Reset(ctx context.Context) error {
	var err error
	for _, key := range Keys() {
		if removeErr := b.store.Remove(ctx, key); removeErr != nil {
			err = multierr.Append(err, fmt.Errorf("remove %s: %w", key, removeErr))
		}
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset snapshot")
	}
	return nil
}

func (b *Bridge) read(ctx context.Context, key string, dst any) (bool, error) {
	body, err := b.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		if b.logg != nil {
			b.logg.Debug(b.logg.WithField(ctx, "blob_key", key), "blob missing, using default")
		}
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func nonNilOrders(list []orders.Order) []orders.Order {
	if list == nil {
		return []orders.Order{}
	}
	return list
}

func nonNilEvents(list []outbox.PartEvent) []outbox.PartEvent {
	if list == nil {
		return []outbox.PartEvent{}
	}
	return list
}

func nonNilIssues(list []outbox.ReportedIssue) []outbox.ReportedIssue {
	if list == nil {
		return []outbox.ReportedIssue{}
	}
	return list
}
