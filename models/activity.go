package models

import "time"

// Activity è una voce del registro delle modifiche
type Activity struct {
	Seq      uint64    `json:"seq"`
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	EntityID string    `json:"entityId"`
	At       time.Time `json:"at"`
}
