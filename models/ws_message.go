package models

// Tipi di evento inviati ai client WebSocket
const (
	EventNotificationCreated = "notification.created"
	EventNotificationRead    = "notification.read"
	EventLeadInteraction     = "lead.interaction"
)

// WSMessage è la busta di ogni evento inviato sul WebSocket
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// LeadInteractionEvent è il payload di EventLeadInteraction
type LeadInteractionEvent struct {
	LeadID      int64       `json:"leadId"`
	Interaction Interaction `json:"interaction"`
}
