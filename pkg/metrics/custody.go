package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/partcustody/pkg/enums"
)

// CustodyMetrics counts custody actions, rejections, persistence failures and outbox backlog.
// A nil *CustodyMetrics is valid and records nothing.
type CustodyMetrics struct {
	actions             *prometheus.CounterVec
	rejections          *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	pending             *prometheus.GaugeVec
	synced              *prometheus.CounterVec
}

// NewCustodyMetrics registers the custody metrics on the provided registerer.
func NewCustodyMetrics(reg prometheus.Registerer) *CustodyMetrics {
	if reg == nil {
		return &CustodyMetrics{}
	}
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "custody_actions_total",
		Help: "Custody actions applied, by action and scope (item or order).",
	}, []string{"action", "scope"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "custody_rejections_total",
		Help: "Operations rejected by validation.",
	}, []string{"operation"})
	persistenceFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "custody_persistence_failures_total",
		Help: "Snapshot persistence failures by operation.",
	}, []string{"operation"})
	pending := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "custody_outbox_pending",
		Help: "Outbox records not yet synced, by kind.",
	}, []string{"kind"})
	synced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "custody_synced_total",
		Help: "Outbox records flipped to synced, by kind.",
	}, []string{"kind"})
	reg.MustRegister(actions, rejections, persistenceFailures, pending, synced)
	return &CustodyMetrics{
		actions:             actions,
		rejections:          rejections,
		persistenceFailures: persistenceFailures,
		pending:             pending,
		synced:              synced,
	}
}

// IncAction records an applied custody action.
func (c *CustodyMetrics) IncAction(action enums.CustodyAction, scope string) {
	if c == nil || c.actions == nil {
		return
	}
	c.actions.WithLabelValues(normalizeLabel(action.String()), normalizeLabel(scope)).Inc()
}

// IncRejection records a validation rejection for the named operation.
func (c *CustodyMetrics) IncRejection(operation string) {
	if c == nil || c.rejections == nil {
		return
	}
	c.rejections.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncPersistenceFailure records a failed load, save or reset.
func (c *CustodyMetrics) IncPersistenceFailure(operation string) {
	if c == nil || c.persistenceFailures == nil {
		return
	}
	c.persistenceFailures.WithLabelValues(normalizeLabel(operation)).Inc()
}

// SetPending publishes the current unsynced count for the kind.
func (c *CustodyMetrics) SetPending(kind enums.OutboxKind, count int) {
	if c == nil || c.pending == nil {
		return
	}
	c.pending.WithLabelValues(normalizeLabel(kind.String())).Set(float64(count))
}

// AddSynced records records flipped to synced.
func (c *CustodyMetrics) AddSynced(kind enums.OutboxKind, count int) {
	if c == nil || c.synced == nil || count <= 0 {
		return
	}
	c.synced.WithLabelValues(normalizeLabel(kind.String())).Add(float64(count))
}
