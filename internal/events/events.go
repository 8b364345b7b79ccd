package events

import "context"

// Stream carrying every dashboard-facing event.
const StreamDashboard = "events:dashboard"

// Event types
const (
	EventCampaignCreated       = "campaign_created"
	EventCampaignStatusChanged = "campaign_status_changed"
	EventAssetsGenerated       = "assets_generated"
	EventAssetUpdated          = "asset_updated"
	EventActivityLogged        = "activity_logged"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
