package model

const (
	RoutingKeyComplaintCreated = "complaint.created"
	RoutingKeyStatusUpdate     = "complaint.status.updated"
	RoutingKeyResponseAdded    = "complaint.response.added"
)

// OutboxEvent is written to the outbox in the same transaction as the change
// it describes.
type OutboxEvent struct {
	RoutingKey string
	Payload    interface{}
}

type ComplaintCreatedMessage struct {
	ComplaintID    string `json:"complaint_id"`
	ComplaintTitle string `json:"complaint_title"`
	Category       string `json:"category"`
	CitizenID      string `json:"citizen_id"`
	Timestamp      int64  `json:"timestamp"`
}

type StatusUpdateMessage struct {
	ComplaintID    string `json:"complaint_id"`
	ComplaintTitle string `json:"complaint_title"`
	NewStatus      string `json:"new_status"`
	CitizenID      string `json:"citizen_id"`
	Timestamp      int64  `json:"timestamp"`
}

type ResponseAddedMessage struct {
	ComplaintID    string `json:"complaint_id"`
	ComplaintTitle string `json:"complaint_title"`
	CitizenID      string `json:"citizen_id"`
	ResponderID    string `json:"responder_id"`
	ResponderName  string `json:"responder_name"`
	IsOfficial     bool   `json:"is_official"`
	Timestamp      int64  `json:"timestamp"`
}
