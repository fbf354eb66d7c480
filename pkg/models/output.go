package models

// DestinationID names one of the built-in output destinations.
type DestinationID string

const (
	DestinationApp      DestinationID = "app"
	DestinationTelegram DestinationID = "telegram"
	DestinationX        DestinationID = "x"
	// DestinationStorage persists run results to paid storage; enabling it on
	// any output node adds the storage fee to the run cost.
	DestinationStorage DestinationID = "x402storage"
)

// WebhookResponsePolicy controls what a webhook-triggered run replies with.
type WebhookResponsePolicy string

const (
	WebhookResponsePassthrough  WebhookResponsePolicy = "passthrough"
	WebhookResponseConfirmation WebhookResponsePolicy = "confirmation"
	WebhookResponseTemplate     WebhookResponsePolicy = "template"
)

// Destination is one toggleable output target with free-form per-destination
// configuration (field mappings, chat id, and the like).
type Destination struct {
	ID      DestinationID  `json:"id" validate:"required"`
	Enabled bool           `json:"enabled"`
	Config  map[string]any `json:"config,omitempty"`
}

// OutputData holds an output node's destination toggles and webhook response
// policy.
type OutputData struct {
	Destinations    []Destination         `json:"destinations,omitempty"`
	WebhookResponse WebhookResponsePolicy `json:"webhook_response,omitempty"`
}

// StorageEnabled reports whether the paid storage destination is enabled.
func (o *OutputData) StorageEnabled() bool {
	if o == nil {
		return false
	}

	for _, d := range o.Destinations {
		if d.ID == DestinationStorage && d.Enabled {
			return true
		}
	}

	return false
}

// Clone returns a deep copy of the output data.
func (o *OutputData) Clone() *OutputData {
	if o == nil {
		return nil
	}

	clone := &OutputData{WebhookResponse: o.WebhookResponse}

	clone.Destinations = make([]Destination, len(o.Destinations))
	for i, d := range o.Destinations {
		clone.Destinations[i] = Destination{
			ID:      d.ID,
			Enabled: d.Enabled,
			Config:  copyAnyMap(d.Config),
		}
	}

	return clone
}
