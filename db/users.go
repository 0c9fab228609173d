package db

import (
	"context"
	"database/sql"
	"strings"

	"gestionale-api/models"
)

func scanUser(r rowScanner) (models.User, error) {
	var u models.User
	var username, password, name sql.NullString
	if err := r.Scan(&u.ID, &username, &password, &name); err != nil {
		return models.User{}, err
	}
	u.Username, u.Password, u.Name = username.String, password.String, name.String
	return u, nil
}

// ListUsers restituisce tutti gli utenti
func (m *Manager) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return fetchAll(ctx, m.db, scanUser, "SELECT id, username, password, name FROM users ORDER BY id")
}

// RegisterUser crea un nuovo utente; uno username già presente restituisce un conflitto.
// La password è salvata in chiaro.
func (m *Manager) RegisterUser(ctx context.Context, username, password, name string) (models.User, error) {
	u := models.User{
		ID:       m.newID(),
		Username: strings.TrimSpace(username),
		Password: password,
		Name:     strings.TrimSpace(name),
	}
	if err := validateRecord(u); err != nil {
		return models.User{}, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	err := m.withTx(ctx, func(tx *sql.Tx) error {
		_, exists, err := fetchOne(ctx, tx, scanUser,
			"SELECT id, username, password, name FROM users WHERE username = ?"+m.dialect.lockRows, u.Username)
		if err != nil {
			return err
		}
		if exists {
			return conflict("utente %q già esistente", u.Username)
		}
		_, err = execute(ctx, tx,
			"INSERT INTO users (id, username, password, name) VALUES (?, ?, ?, ?)",
			u.ID, u.Username, u.Password, u.Name,
		)
		// Registrazione concorrente con lo stesso username (indice univoco MySQL)
		if isDuplicateKey(err) {
			return conflict("utente %q già esistente", u.Username)
		}
		return err
	})
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
