package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/angelmondragon/partcustody/pkg/enums"
)

func TestCustodyMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCustodyMetrics(reg)

	m.IncAction(enums.CustodyActionPickedUp, "order")
	m.IncAction(enums.CustodyActionPickedUp, "order")
	m.IncAction(enums.CustodyActionReturned, "item")
	m.IncRejection("report_issue")
	m.IncPersistenceFailure("save")
	m.AddSynced(enums.OutboxKindEvent, 3)
	m.AddSynced(enums.OutboxKindIssue, 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	actions := findMetricFamily(mfs, "custody_actions_total")
	if actions == nil {
		t.Fatal("custody_actions_total not exported")
	}
	var orderPickups float64
	for _, metric := range actions.GetMetric() {
		if matchesLabel(metric.GetLabel(), "action", "PICKED_UP") && matchesLabel(metric.GetLabel(), "scope", "order") {
			orderPickups = metric.GetCounter().GetValue()
		}
	}
	if orderPickups != 2 {
		t.Fatalf("expected 2 order pickups, got %f", orderPickups)
	}

	if got, err := fetchCounterValue(mfs, "custody_rejections_total", "operation", "report_issue"); err != nil || got != 1 {
		t.Fatalf("expected one rejection, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "custody_persistence_failures_total", "operation", "save"); err != nil || got != 1 {
		t.Fatalf("expected one persistence failure, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "custody_synced_total", "kind", "event"); err != nil || got != 3 {
		t.Fatalf("expected three synced events, got %f err=%v", got, err)
	}
	if _, err := fetchCounterValue(mfs, "custody_synced_total", "kind", "issue"); err == nil {
		t.Fatal("zero additions should not create a series")
	}
}

func TestCustodyMetricsPendingGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCustodyMetrics(reg)

	m.SetPending(enums.OutboxKindEvent, 4)
	m.SetPending(enums.OutboxKindEvent, 1)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got := fetchGaugeValue(t, mfs, "custody_outbox_pending", "kind", "event"); got != 1 {
		t.Fatalf("expected pending gauge 1, got %f", got)
	}
}

func TestCustodyMetricsNilSafe(t *testing.T) {
	var m *CustodyMetrics
	m.IncAction(enums.CustodyActionPickedUp, "item")
	m.IncRejection("x")
	m.IncPersistenceFailure("x")
	m.SetPending(enums.OutboxKindIssue, 1)
	m.AddSynced(enums.OutboxKindIssue, 1)
}

func fetchGaugeValue(t *testing.T, mfs []*dto.MetricFamily, name, label, value string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		t.Fatalf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetGauge().GetValue()
		}
	}
	t.Fatalf("gauge %q missing label %s=%s", name, label, value)
	return 0
}
