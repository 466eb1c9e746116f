package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// EventsClient publishes media lifecycle events to per-entity channels so
// other sessions can refresh their asset lists.
type EventsClient struct {
	client *supabase.Client
}

func NewEventsClient(client *supabase.Client) *EventsClient {
	return &EventsClient{
		client: client,
	}
}

func (e *EventsClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish; metadata rows
	// written through Postgres already trigger Realtime change events, so
	// explicit publishing is a no-op hook kept for a future REST publisher.
	return nil
}

func (e *EventsClient) PublishPropertyEvent(propertyID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("property:%s", propertyID.String())
	return e.PublishEvent(channel, event, payload)
}

func (e *EventsClient) PublishClientEvent(clientID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("client:%s", clientID.String())
	return e.PublishEvent(channel, event, payload)
}

// Event payloads
func AssetAddedPayload(propertyID, mediaID uuid.UUID, fileURL string) map[string]interface{} {
	return map[string]interface{}{
		"property_id": propertyID.String(),
		"media_id":    mediaID.String(),
		"file_url":    fileURL,
		"event":       "asset_added",
	}
}

func AssetRemovedPayload(propertyID, mediaID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"property_id": propertyID.String(),
		"media_id":    mediaID.String(),
		"event":       "asset_removed",
	}
}

func OrderChangedPayload(propertyID uuid.UUID, mediaIDs []string) map[string]interface{} {
	return map[string]interface{}{
		"property_id": propertyID.String(),
		"media_ids":   mediaIDs,
		"event":       "order_changed",
	}
}

func DocumentAddedPayload(clientID, documentID uuid.UUID, fileName string) map[string]interface{} {
	return map[string]interface{}{
		"client_id":   clientID.String(),
		"document_id": documentID.String(),
		"file_name":   fileName,
		"event":       "document_added",
	}
}
