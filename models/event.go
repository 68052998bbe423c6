package models

const EventNamespaceSCW = "SCW"

// Event is one record of the append-only state log.
type Event struct {
	TS           string         `json:"ts"`
	Namespace    string         `json:"namespace"`
	Kind         string         `json:"kind"`
	EventType    string         `json:"event_type"`
	Status       string         `json:"status"`
	ErrorType    string         `json:"error_type,omitempty"`
	ResourceType string         `json:"resource_type"`
	ResourceName string         `json:"resource_name"`
	Path         string         `json:"path"`
	PostChecksum *string        `json:"post_checksum"`
	Labels       []string       `json:"labels"`
	Meta         map[string]any `json:"meta"`
}
