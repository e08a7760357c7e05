package sse

import (
	"time"

	"github.com/GTDGit/gtd_dashboard/internal/models"
)

// OrderNotifier is the interface services use to emit order events.
type OrderNotifier interface {
	NotifyOrderCreated(o *models.Order)
	NotifyOrderUpdated(o *models.Order)
	NotifyOrderDeleted(id string)
}

// HubNotifier implements OrderNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
	now func() time.Time
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub, now: time.Now}
}

func (n *HubNotifier) NotifyOrderCreated(o *models.Order) {
	n.publish(n.orderToEvent(EventOrderCreated, o))
}

func (n *HubNotifier) NotifyOrderUpdated(o *models.Order) {
	n.publish(n.orderToEvent(EventOrderUpdated, o))
}

func (n *HubNotifier) NotifyOrderDeleted(id string) {
	n.publish(&OrderEvent{Event: EventOrderDeleted, OrderID: id, Timestamp: n.now()})
}

func (n *HubNotifier) publish(event *OrderEvent) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(event)
}

func (n *HubNotifier) orderToEvent(eventType EventType, o *models.Order) *OrderEvent {
	amount := o.Amount
	return &OrderEvent{
		Event:     eventType,
		OrderID:   o.ID,
		Customer:  o.Customer,
		Product:   o.Product,
		Status:    string(o.Status),
		Amount:    &amount,
		Timestamp: n.now(),
	}
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (NopNotifier) NotifyOrderCreated(*models.Order) {}
func (NopNotifier) NotifyOrderUpdated(*models.Order) {}
func (NopNotifier) NotifyOrderDeleted(string)        {}
