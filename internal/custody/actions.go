package custody

import (
	"context"
	"strings"

	"github.com/angelmondragon/partcustody/internal/orders"
	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/outbox"
)

// RecordItemAction applies a pickup or return to a single item and queues one event.
// An unknown item changes nothing and returns Applied=false without an error.
func (s *service) RecordItemAction(ctx context.Context, input ItemActionInput) (ActionResult, error) {
	input.Capture.PhotoRef = strings.TrimSpace(input.Capture.PhotoRef)
	ctx = s.logg.WithItemID(ctx, input.ItemID)
	if err := validateStruct(input); err != nil {
		s.reject(ctx, "item_action", err)
		return ActionResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.restore(ctx)

	item, ok := s.store.FindItem(input.ItemID)
	if !ok {
		s.logg.Warn(ctx, "item action ignored, unknown item")
		return ActionResult{}, nil
	}
	s.store.UpdateItemStatus(item.ID, input.Action.ItemStatus())

	event := outbox.SingleItemEvent{
		EventHeader:     s.header(input.Action, input.Capture),
		PartOrderItemID: item.ID,
	}
	s.log.AppendEvent(ctx, event)
	s.metrics.IncAction(input.Action, "item")
	s.refreshPending()

	order, _ := s.store.Order(item.OrderID)
	result := ActionResult{Applied: true, Order: order, Event: event}
	result.Persisted = s.save(ctx, "item_action") == nil

	s.logg.Info(s.logg.WithFields(s.logg.WithOrderID(ctx, order.ID), map[string]any{
		"action":       input.Action,
		"order_status": order.Status,
	}), "item action recorded")
	return result, nil
}

// RecordOrderAction applies an action to a selection of one order's items and queues
// one order-level event. A pickup also marks every unselected item that was still
// waiting as NOT_PICKED_UP. The order status is derived once, after all item changes.
func (s *service) RecordOrderAction(ctx context.Context, input OrderActionInput) (ActionResult, error) {
	input.Capture.PhotoRef = strings.TrimSpace(input.Capture.PhotoRef)
	input.ItemIDs = dedupe(input.ItemIDs)
	ctx = s.logg.WithOrderID(ctx, input.OrderID)
	if err := validateStruct(input); err != nil {
		s.reject(ctx, "order_action", err)
		return ActionResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.restore(ctx)

	order, ok := s.store.Order(input.OrderID)
	if !ok {
		s.logg.Warn(ctx, "order action ignored, unknown order")
		return ActionResult{}, nil
	}
	for _, itemID := range input.ItemIDs {
		if !order.HasItem(itemID) {
			err := fieldError("partOrderItemIds", "contains an item outside the order: "+itemID)
			s.reject(ctx, "order_action", err)
			return ActionResult{}, err
		}
	}

	s.store.UpdateItemStatuses(cascade(order, input.ItemIDs, input.Action))

	event := outbox.OrderLevelEvent{
		EventHeader:      s.header(input.Action, input.Capture),
		PartOrderID:      order.ID,
		PartOrderItemIDs: append([]string(nil), input.ItemIDs...),
	}
	s.log.AppendEvent(ctx, event)
	s.metrics.IncAction(input.Action, "order")
	s.refreshPending()

	updated, _ := s.store.Order(order.ID)
	result := ActionResult{Applied: true, Order: updated, Event: event}
	result.Persisted = s.save(ctx, "order_action") == nil

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"action":       input.Action,
		"selected":     len(input.ItemIDs),
		"order_status": updated.Status,
	}), "order action recorded")
	return result, nil
}

// cascade builds the item updates for an order action. Selected items take the
// action's status; on pickup, unselected items still READY_FOR_PICKUP or
// NOT_PICKED_UP become NOT_PICKED_UP.
func cascade(order orders.Order, selected []string, action enums.CustodyAction) []orders.ItemUpdate {
	chosen := make(map[string]bool, len(selected))
	updates := make([]orders.ItemUpdate, 0, len(order.Items))
	for _, itemID := range selected {
		chosen[itemID] = true
		updates = append(updates, orders.ItemUpdate{ItemID: itemID, Status: action.ItemStatus()})
	}
	if action != enums.CustodyActionPickedUp {
		return updates
	}
	for _, item := range order.Items {
		if chosen[item.ID] {
			continue
		}
		switch item.Status {
		case enums.ItemStatusReadyForPickup, enums.ItemStatusNotPickedUp:
			updates = append(updates, orders.ItemUpdate{ItemID: item.ID, Status: enums.ItemStatusNotPickedUp})
		}
	}
	return updates
}

func (s *service) header(action enums.CustodyAction, capture Capture) outbox.EventHeader {
	return outbox.EventHeader{
		ID:        s.newID(),
		Type:      action,
		PhotoRef:  capture.PhotoRef,
		Timestamp: s.timestamp(),
		Geo:       capture.Location,
	}
}

func (s *service) reject(ctx context.Context, operation string, err error) {
	s.metrics.IncRejection(operation)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"operation": operation,
		"reason":    err.Error(),
	}), "request rejected")
}

func dedupe(ids []string) []string {
	if ids == nil {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
