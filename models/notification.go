package models

// Notification rappresenta una notifica per un utente
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message" validate:"required"`
	UserID    string    `json:"userId"`
	Read      bool      `json:"read"`
	Timestamp Timestamp `json:"timestamp,omitzero"`
}
