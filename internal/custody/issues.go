package custody

import (
	"context"
	"strings"

	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/outbox"
)

// ReportIssue records a problem against an order. It never changes item or order
// status. SOME_PARTS needs affected items from the order; OTHER needs a description.
// Only the field matching the scope or type is kept on the stored issue.
func (s *service) ReportIssue(ctx context.Context, input ReportIssueInput) (IssueResult, error) {
	input.Description = strings.TrimSpace(input.Description)
	input.ReportedBy = strings.TrimSpace(input.ReportedBy)
	input.AffectedPartIDs = dedupe(input.AffectedPartIDs)
	ctx = s.logg.WithOrderID(ctx, input.OrderID)

	if err := validateStruct(input); err != nil {
		s.reject(ctx, "report_issue", err)
		return IssueResult{}, err
	}
	if input.Scope == enums.IssueScopeSomeParts && len(input.AffectedPartIDs) == 0 {
		err := fieldError("affectedPartIds", "is required when scope is SOME_PARTS")
		s.reject(ctx, "report_issue", err)
		return IssueResult{}, err
	}
	if input.Type == enums.IssueTypeOther && input.Description == "" {
		err := fieldError("description", "is required when type is OTHER")
		s.reject(ctx, "report_issue", err)
		return IssueResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.restore(ctx)

	order, ok := s.store.Order(input.OrderID)
	if !ok {
		s.logg.Warn(ctx, "issue ignored, unknown order")
		return IssueResult{}, nil
	}

	issue := outbox.ReportedIssue{
		ID:          s.newID(),
		PartOrderID: order.ID,
		Type:        input.Type,
		Scope:       input.Scope,
		ReportedBy:  input.ReportedBy,
		Timestamp:   s.timestamp(),
	}
	if issue.ReportedBy == "" {
		issue.ReportedBy = s.reporter
	}
	if input.Scope == enums.IssueScopeSomeParts {
		for _, itemID := range input.AffectedPartIDs {
			if !order.HasItem(itemID) {
				err := fieldError("affectedPartIds", "contains an item outside the order: "+itemID)
				s.reject(ctx, "report_issue", err)
				return IssueResult{}, err
			}
		}
		issue.AffectedPartIDs = input.AffectedPartIDs
	}
	if input.Type == enums.IssueTypeOther {
		issue.Description = input.Description
	}

	s.log.AppendIssue(ctx, issue)
	s.refreshPending()

	result := IssueResult{Applied: true, Issue: issue}
	result.Persisted = s.save(ctx, "report_issue") == nil
	return result, nil
}
