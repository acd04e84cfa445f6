package outbox

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/types"
)

// Geo is an optional location fix captured with a photo.
type Geo struct {
	Lat float64  `json:"lat"`
	Lng float64  `json:"lng"`
	Acc *float64 `json:"acc,omitempty"`
}

func (g *Geo) clone() *Geo {
	if g == nil {
		return nil
	}
	out := *g
	if g.Acc != nil {
		acc := *g.Acc
		out.Acc = &acc
	}
	return &out
}

// EventHeader carries the fields shared by every custody event.
type EventHeader struct {
	ID        string
	Type      enums.CustodyAction
	PhotoRef  string
	Timestamp types.UnixMillis
	Geo       *Geo
	Synced    bool
}

// PartEvent is one of SingleItemEvent or OrderLevelEvent.
type PartEvent interface {
	Header() EventHeader
	// OrderID returns the order the event is about; empty for single-item events,
	// which only reference their item.
	OrderID() string
	// ItemIDs returns the items the event covers, in capture order.
	ItemIDs() []string

	withSynced(bool) PartEvent
	clone() PartEvent
}

// SingleItemEvent records an action on one item.
type SingleItemEvent struct {
	EventHeader
	PartOrderItemID string
}

func (e SingleItemEvent) Header() EventHeader { return e.EventHeader }
func (e SingleItemEvent) OrderID() string     { return "" }
func (e SingleItemEvent) ItemIDs() []string   { return []string{e.PartOrderItemID} }

func (e SingleItemEvent) withSynced(synced bool) PartEvent {
	out := e.clone().(SingleItemEvent)
	out.Synced = synced
	return out
}

func (e SingleItemEvent) clone() PartEvent {
	e.Geo = e.Geo.clone()
	return e
}

// OrderLevelEvent records an action on a selection of an order's items.
type OrderLevelEvent struct {
	EventHeader
	PartOrderID      string
	PartOrderItemIDs []string
}

func (e OrderLevelEvent) Header() EventHeader { return e.EventHeader }
func (e OrderLevelEvent) OrderID() string     { return e.PartOrderID }
func (e OrderLevelEvent) ItemIDs() []string   { return append([]string(nil), e.PartOrderItemIDs...) }

func (e OrderLevelEvent) withSynced(synced bool) PartEvent {
	out := e.clone().(OrderLevelEvent)
	out.Synced = synced
	return out
}

func (e OrderLevelEvent) clone() PartEvent {
	e.Geo = e.Geo.clone()
	e.PartOrderItemIDs = append([]string(nil), e.PartOrderItemIDs...)
	return e
}

// eventRecord is the flat wire shape; which id field is present selects the variant.
type eventRecord struct {
	ID               string              `json:"id"`
	PartOrderItemID  *string             `json:"partOrderItemId,omitempty"`
	PartOrderID      *string             `json:"partOrderId,omitempty"`
	PartOrderItemIDs []string            `json:"partOrderItemIds,omitempty"`
	Type             enums.CustodyAction `json:"type"`
	PhotoURI         string              `json:"photoUri"`
	Timestamp        types.UnixMillis    `json:"timestamp"`
	Geo              *Geo                `json:"geo,omitempty"`
	Synced           bool                `json:"synced"`
}

var ErrAmbiguousEvent = errors.New("outbox: event must reference exactly one of partOrderItemId or partOrderId")

func toRecord(event PartEvent) (eventRecord, error) {
	h := event.Header()
	rec := eventRecord{
		ID:        h.ID,
		Type:      h.Type,
		PhotoURI:  h.PhotoRef,
		Timestamp: h.Timestamp,
		Geo:       h.Geo,
		Synced:    h.Synced,
	}
	switch e := event.(type) {
	case SingleItemEvent:
		itemID := e.PartOrderItemID
		rec.PartOrderItemID = &itemID
	case OrderLevelEvent:
		orderID := e.PartOrderID
		rec.PartOrderID = &orderID
		rec.PartOrderItemIDs = e.PartOrderItemIDs
		if rec.PartOrderItemIDs == nil {
			rec.PartOrderItemIDs = []string{}
		}
	default:
		return eventRecord{}, fmt.Errorf("outbox: unsupported event type %T", event)
	}
	return rec, nil
}

func fromRecord(rec eventRecord) (PartEvent, error) {
	header := EventHeader{
		ID:        rec.ID,
		Type:      rec.Type,
		PhotoRef:  rec.PhotoURI,
		Timestamp: rec.Timestamp,
		Geo:       rec.Geo,
		Synced:    rec.Synced,
	}
	if !rec.Type.IsValid() {
		return nil, fmt.Errorf("outbox: event %q: invalid type %q", rec.ID, rec.Type)
	}
	switch {
	case rec.PartOrderID != nil && rec.PartOrderItemID == nil:
		return OrderLevelEvent{
			EventHeader:      header,
			PartOrderID:      *rec.PartOrderID,
			PartOrderItemIDs: append([]string{}, rec.PartOrderItemIDs...),
		}, nil
	case rec.PartOrderItemID != nil && rec.PartOrderID == nil:
		return SingleItemEvent{EventHeader: header, PartOrderItemID: *rec.PartOrderItemID}, nil
	default:
		return nil, fmt.Errorf("%w (event %q)", ErrAmbiguousEvent, rec.ID)
	}
}

// Events is the JSON codec for an event log; it encodes to the flat record array.
type Events []PartEvent

// MarshalJSON implements json.Marshaler.
func (es Events) MarshalJSON() ([]byte, error) {
	records := make([]eventRecord, 0, len(es))
	for _, event := range es {
		rec, err := toRecord(event)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return json.Marshal(records)
}

// UnmarshalJSON implements json.Unmarshaler.
func (es *Events) UnmarshalJSON(data []byte) error {
	var records []eventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	out := make(Events, 0, len(records))
	for _, rec := range records {
		event, err := fromRecord(rec)
		if err != nil {
			return err
		}
		out = append(out, event)
	}
	*es = out
	return nil
}

// Wire wraps a single event so it encodes as one flat record.
type Wire struct {
	PartEvent
}

// MarshalJSON implements json.Marshaler.
func (w Wire) MarshalJSON() ([]byte, error) {
	if w.PartEvent == nil {
		return []byte("null"), nil
	}
	rec, err := toRecord(w.PartEvent)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}
