package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeMailItemReceived = "mailitem.received"
	EventTypeMailItemNotified = "mailitem.notified"
	EventTypeMailItemPickedUp = "mailitem.picked_up"
	EventTypeAdminAction      = "admin.action"
)

type MailItemReceivedEvent struct {
	BaseEvent
	MailItemID     int64 `json:"mail_item_id"`
	OrganizationID int64 `json:"organization_id"`
	MailRoomID     int64 `json:"mail_room_id"`
	IsPriority     bool  `json:"is_priority"`
}

func NewMailItemReceivedEvent(mailItemID, organizationID, mailRoomID int64, isPriority bool) *MailItemReceivedEvent {
	return &MailItemReceivedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeMailItemReceived,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"mail_item_id":    mailItemID,
				"organization_id": organizationID,
				"mail_room_id":    mailRoomID,
				"is_priority":     isPriority,
			},
		},
		MailItemID:     mailItemID,
		OrganizationID: organizationID,
		MailRoomID:     mailRoomID,
		IsPriority:     isPriority,
	}
}

type MailItemNotifiedEvent struct {
	BaseEvent
	MailItemID     int64  `json:"mail_item_id"`
	NotificationID int64  `json:"notification_id"`
	Channel        string `json:"channel"`
}

func NewMailItemNotifiedEvent(mailItemID, notificationID int64, channel string) *MailItemNotifiedEvent {
	return &MailItemNotifiedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeMailItemNotified,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"mail_item_id":    mailItemID,
				"notification_id": notificationID,
				"channel":         channel,
			},
		},
		MailItemID:     mailItemID,
		NotificationID: notificationID,
		Channel:        channel,
	}
}

type MailItemPickedUpEvent struct {
	BaseEvent
	MailItemID    int64 `json:"mail_item_id"`
	PickupID      int64 `json:"pickup_id"`
	ProcessedByID int64 `json:"processed_by_id"`
}

func NewMailItemPickedUpEvent(mailItemID, pickupID, processedByID int64) *MailItemPickedUpEvent {
	return &MailItemPickedUpEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeMailItemPickedUp,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"mail_item_id":    mailItemID,
				"pickup_id":       pickupID,
				"processed_by_id": processedByID,
			},
		},
		MailItemID:    mailItemID,
		PickupID:      pickupID,
		ProcessedByID: processedByID,
	}
}

// AdminActionEvent feeds the append-only audit log; entity is the table-ish
// name ("organization", "mail_room", "integration") and detail carries the
// mutated fields.
type AdminActionEvent struct {
	BaseEvent
	OrganizationID int64                  `json:"organization_id"`
	ActorID        int64                  `json:"actor_id"`
	Action         string                 `json:"action"`
	Entity         string                 `json:"entity"`
	EntityID       int64                  `json:"entity_id"`
	Detail         map[string]interface{} `json:"detail"`
}

func NewAdminActionEvent(organizationID, actorID int64, action, entity string, entityID int64, detail map[string]interface{}) *AdminActionEvent {
	return &AdminActionEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAdminAction,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"organization_id": organizationID,
				"actor_id":        actorID,
				"action":          action,
				"entity":          entity,
				"entity_id":       entityID,
			},
		},
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         action,
		Entity:         entity,
		EntityID:       entityID,
		Detail:         detail,
	}
}
