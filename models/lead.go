package models

import "encoding/json"

// Interaction è un contatto registrato con un lead
type Interaction struct {
	ID        RecordID `json:"id" validate:"required"`
	Text      string   `json:"text" validate:"required"`
	User      string   `json:"user" validate:"required"`
	Timestamp string   `json:"timestamp" validate:"required"`
	Extra     Extra    `json:"-"`
}

func (i Interaction) MarshalJSON() ([]byte, error) {
	type plain Interaction
	b, err := json.Marshal(plain(i))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, i.Extra)
}

func (i *Interaction) UnmarshalJSON(data []byte) error {
	type plain Interaction
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, "id", "text", "user", "timestamp")
	if err != nil {
		return err
	}
	p.Extra = extra
	*i = Interaction(p)
	return nil
}

// Lead rappresenta un potenziale cliente
type Lead struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name" validate:"required"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Classification string        `json:"classification"`
	Status         string        `json:"status"`
	Responsible    string        `json:"responsible"`
	Source         string        `json:"source"`
	EstimatedValue float64       `json:"estimatedValue" validate:"gte=0"`
	Reminder       string        `json:"reminder"`
	Interactions   []Interaction `json:"interactions" validate:"dive"`
	CreatedAt      Timestamp     `json:"createdAt,omitzero"` // Impostato alla creazione, mai modificato
}

// InteractionRequest è il corpo di POST /api/leads/:id/interactions
type InteractionRequest struct {
	Text string `json:"text"`
}
