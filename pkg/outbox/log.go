// Package outbox holds the append-only custody event log and reported issues
// awaiting upload. Records are never removed; only their synced flag changes.
package outbox

import (
	"context"
	"sync"

	"github.com/angelmondragon/partcustody/pkg/logger"
)

// SyncCounts reports how many records a sync flipped to synced.
type SyncCounts struct {
	Events int `json:"events"`
	Issues int `json:"issues"`
}

// PendingCounts reports how many records are still unsynced.
type PendingCounts struct {
	Events int `json:"events"`
	Issues int `json:"issues"`
}

// Log owns the event and issue sequences. Every write swaps in a new slice, so
// slices handed to readers are never mutated afterwards.
type Log struct {
	mu     sync.RWMutex
	events []PartEvent
	issues []ReportedIssue
	logg   *logger.Logger
}

// NewLog returns an empty log. logg may be nil.
func NewLog(logg *logger.Logger) *Log {
	return &Log{logg: logg}
}

// AppendEvent adds an event at the end of the log.
func (l *Log) AppendEvent(ctx context.Context, event PartEvent) {
	l.mu.Lock()
	next := make([]PartEvent, len(l.events), len(l.events)+1)
	copy(next, l.events)
	l.events = append(next, event.clone())
	l.mu.Unlock()

	if l.logg != nil {
		h := event.Header()
		logCtx := l.logg.WithFields(l.logg.WithEventID(ctx, h.ID), map[string]any{
			"event_type": h.Type,
			"item_count": len(event.ItemIDs()),
		})
		l.logg.Info(logCtx, "outbox event queued")
	}
}

// AppendIssue adds an issue at the end of the issue list.
func (l *Log) AppendIssue(ctx context.Context, issue ReportedIssue) {
	l.mu.Lock()
	next := make([]ReportedIssue, len(l.issues), len(l.issues)+1)
	copy(next, l.issues)
	l.issues = append(next, issue.clone())
	l.mu.Unlock()

	if l.logg != nil {
		logCtx := l.logg.WithFields(l.logg.WithOrderID(ctx, issue.PartOrderID), map[string]any{
			"issue_id":    issue.ID,
			"issue_type":  issue.Type,
			"issue_scope": issue.Scope,
		})
		l.logg.Info(logCtx, "issue queued")
	}
}

// Events returns a deep copy of the event log in append order.
func (l *Log) Events() []PartEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]PartEvent, len(l.events))
	for i, event := range l.events {
		out[i] = event.clone()
	}
	return out
}

// Issues returns a deep copy of the issues in report order.
func (l *Log) Issues() []ReportedIssue {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ReportedIssue, len(l.issues))
	for i, issue := range l.issues {
		out[i] = issue.clone()
	}
	return out
}

// IssueForOrder returns the earliest reported issue for the order.
func (l *Log) IssueForOrder(orderID string) (ReportedIssue, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, issue := range l.issues {
		if issue.PartOrderID == orderID {
			return issue.clone(), true
		}
	}
	return ReportedIssue{}, false
}

// Pending counts records not yet synced.
func (l *Log) Pending() PendingCounts {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var counts PendingCounts
	for _, event := range l.events {
		if !event.Header().Synced {
			counts.Events++
		}
	}
	for _, issue := range l.issues {
		if !issue.Synced {
			counts.Issues++
		}
	}
	return counts
}

// MarkAllSynced flips every unsynced record to synced. Calling it again flips nothing.
func (l *Log) MarkAllSynced() SyncCounts {
	l.mu.Lock()
	defer l.mu.Unlock()

	var counts SyncCounts
	events := make([]PartEvent, len(l.events))
	for i, event := range l.events {
		if event.Header().Synced {
			events[i] = event
			continue
		}
		events[i] = event.withSynced(true)
		counts.Events++
	}
	issues := make([]ReportedIssue, len(l.issues))
	for i, issue := range l.issues {
		if !issue.Synced {
			issue = issue.clone()
			issue.Synced = true
			counts.Issues++
		}
		issues[i] = issue
	}
	l.events = events
	l.issues = issues
	return counts
}

// Replace swaps in previously persisted sequences, as on startup.
func (l *Log) Replace(events []PartEvent, issues []ReportedIssue) {
	nextEvents := make([]PartEvent, len(events))
	for i, event := range events {
		nextEvents[i] = event.clone()
	}
	nextIssues := make([]ReportedIssue, len(issues))
	for i, issue := range issues {
		nextIssues[i] = issue.clone()
	}
	l.mu.Lock()
	l.events = nextEvents
	l.issues = nextIssues
	l.mu.Unlock()
}

// Reset empties both sequences.
func (l *Log) Reset() {
	l.Replace(nil, nil)
}
