package outbox

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/logger"
	"github.com/angelmondragon/partcustody/pkg/types"
)

func itemEvent(id, itemID string) SingleItemEvent {
	return SingleItemEvent{
		EventHeader:     EventHeader{ID: id, Type: enums.CustodyActionPickedUp, PhotoRef: "photo-" + id, Timestamp: types.FromMillis(1)},
		PartOrderItemID: itemID,
	}
}

func TestLogAppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	log := NewLog(nil)

	log.AppendEvent(ctx, itemEvent("e1", "i1"))
	log.AppendEvent(ctx, OrderLevelEvent{
		EventHeader:      EventHeader{ID: "e2", Type: enums.CustodyActionPickedUp, PhotoRef: "p"},
		PartOrderID:      "o1",
		PartOrderItemIDs: []string{"i2", "i3"},
	})

	events := log.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].Header().ID)
	assert.Equal(t, "e2", events[1].Header().ID)
	assert.Equal(t, PendingCounts{Events: 2}, log.Pending())
}

func TestLogReadersReceiveCopies(t *testing.T) {
	ctx := context.Background()
	log := NewLog(nil)
	selection := []string{"i1", "i2"}
	log.AppendEvent(ctx, OrderLevelEvent{
		EventHeader:      EventHeader{ID: "e1", Type: enums.CustodyActionPickedUp, PhotoRef: "p"},
		PartOrderID:      "o1",
		PartOrderItemIDs: selection,
	})
	selection[0] = "mutated"

	first := log.Events()[0].(OrderLevelEvent)
	assert.Equal(t, []string{"i1", "i2"}, first.PartOrderItemIDs)

	first.PartOrderItemIDs[1] = "mutated"
	again := log.Events()[0].(OrderLevelEvent)
	assert.Equal(t, []string{"i1", "i2"}, again.PartOrderItemIDs)

	log.AppendIssue(ctx, ReportedIssue{ID: "r1", PartOrderID: "o1", AffectedPartIDs: []string{"i1"}})
	issues := log.Issues()
	issues[0].AffectedPartIDs[0] = "mutated"
	assert.Equal(t, []string{"i1"}, log.Issues()[0].AffectedPartIDs)
}

func TestLogMarkAllSyncedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	log := NewLog(nil)
	log.AppendEvent(ctx, itemEvent("e1", "i1"))
	log.AppendEvent(ctx, itemEvent("e2", "i2"))
	log.AppendIssue(ctx, ReportedIssue{ID: "r1", PartOrderID: "o1", Type: enums.IssueTypeOther, Scope: enums.IssueScopeAllParts})

	before := log.Events()

	first := log.MarkAllSynced()
	assert.Equal(t, SyncCounts{Events: 2, Issues: 1}, first)
	assert.Equal(t, PendingCounts{}, log.Pending())
	for _, event := range log.Events() {
		assert.True(t, event.Header().Synced)
	}
	for _, event := range before {
		assert.False(t, event.Header().Synced, "earlier snapshots must not change")
	}

	afterFirst := log.Events()
	second := log.MarkAllSynced()
	assert.Equal(t, SyncCounts{}, second)
	assert.Equal(t, afterFirst, log.Events())
}

func TestLogIssueForOrderReturnsEarliest(t *testing.T) {
	ctx := context.Background()
	log := NewLog(nil)
	log.AppendIssue(ctx, ReportedIssue{ID: "r1", PartOrderID: "o1"})
	log.AppendIssue(ctx, ReportedIssue{ID: "r2", PartOrderID: "o2"})
	log.AppendIssue(ctx, ReportedIssue{ID: "r3", PartOrderID: "o1"})

	issue, ok := log.IssueForOrder("o1")
	require.True(t, ok)
	assert.Equal(t, "r1", issue.ID)
	assert.Len(t, log.Issues(), 3)

	_, ok = log.IssueForOrder("o9")
	assert.False(t, ok)
}

func TestLogReplaceAndReset(t *testing.T) {
	log := NewLog(nil)
	log.Replace([]PartEvent{itemEvent("e1", "i1")}, []ReportedIssue{{ID: "r1", PartOrderID: "o1", Synced: true}})
	assert.Equal(t, PendingCounts{Events: 1}, log.Pending())

	log.Reset()
	assert.Empty(t, log.Events())
	assert.Empty(t, log.Issues())
}

func TestLogLogsQueuedEvents(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	log := NewLog(logg)

	log.AppendEvent(context.Background(), itemEvent("e1", "i1"))
	assert.Contains(t, buf.String(), "outbox event queued")
	assert.Contains(t, buf.String(), `"event_id":"e1"`)
}
