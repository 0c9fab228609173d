package models

// User rappresenta un utente dell'applicazione.
// La password è salvata in chiaro e non viene mai serializzata.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username" validate:"required"`
	Password string `json:"-" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// RegisterRequest è il corpo di POST /api/users/register
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
