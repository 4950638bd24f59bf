package models

// MetricsUpdateType is the type tag on telemetry push messages.
const MetricsUpdateType = "metrics_update"

// MetricsPayload is one telemetry snapshot: both monitored collections plus
// the time the snapshot was taken, as an ISO-8601 string.
type MetricsPayload struct {
	Gpus      []Gpu           `json:"gpus"`
	Storage   []StorageVolume `json:"storage"`
	Timestamp string          `json:"timestamp"`
}

// MetricsUpdate is the envelope pushed to every connected observer on each
// broadcast tick.
type MetricsUpdate struct {
	Type string         `json:"type"`
	Data MetricsPayload `json:"data"`
}

// Command intents.
const (
	IntentOpenService    = "open_service"
	IntentViewLogs       = "view_logs"
	IntentRestartService = "restart_service"
	IntentQueryStatus    = "query_status"
	IntentUnknown        = "unknown"
)

// CommandRequest is the body of a natural-language command call.
type CommandRequest struct {
	Command string `json:"command" binding:"required,min=1"`
}

// CommandResponse is the structured result of routing a command.
type CommandResponse struct {
	Intent               string  `json:"intent"`
	Confidence           float64 `json:"confidence"`
	ServiceID            string  `json:"serviceId,omitempty"`
	Message              string  `json:"message"`
	RequiresConfirmation bool    `json:"requiresConfirmation"`
}

// InvalidCommandResponse is the fixed payload returned for a malformed or
// empty command request, before either routing mode is consulted.
func InvalidCommandResponse() CommandResponse {
	return CommandResponse{
		Intent:     IntentUnknown,
		Confidence: 0,
		Message:    "Invalid command format",
	}
}
