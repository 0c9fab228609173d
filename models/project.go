package models

// Project rappresenta un progetto, opzionalmente legato a un cliente
type Project struct {
	ID       int64  `json:"id"`
	Title    string `json:"title" validate:"required"`
	ClientID *int64 `json:"clientId"`
	Status   string `json:"status"`
	Deadline string `json:"deadline"`
}
