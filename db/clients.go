package db

import (
	"context"
	"database/sql"
	"strings"

	"gestionale-api/models"
)

const clientColumns = "id, name, email, phone"

func scanClient(r rowScanner) (models.Client, error) {
	var c models.Client
	var name, email, phone sql.NullString
	if err := r.Scan(&c.ID, &name, &email, &phone); err != nil {
		return models.Client{}, err
	}
	c.Name, c.Email, c.Phone = name.String, email.String, phone.String
	return c, nil
}

func normalizeClient(c models.Client) (models.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	return c, validateRecord(c)
}

// ListClients restituisce tutti i clienti
func (m *Manager) ListClients(ctx context.Context) ([]models.Client, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return fetchAll(ctx, m.db, scanClient, "SELECT "+clientColumns+" FROM clients ORDER BY id")
}

// CreateClient inserisce un cliente e lo restituisce con l'id assegnato
func (m *Manager) CreateClient(ctx context.Context, c models.Client) (models.Client, error) {
	c, err := normalizeClient(c)
	if err != nil {
		return models.Client{}, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db,
		"INSERT INTO clients (name, email, phone) VALUES (?, ?, ?)",
		c.Name, c.Email, c.Phone,
	)
	if err != nil {
		return models.Client{}, err
	}
	c.ID = res.LastInsertID
	return c, nil
}

// UpdateClient sostituisce tutti i campi modificabili del cliente
func (m *Manager) UpdateClient(ctx context.Context, id int64, c models.Client) (models.Client, error) {
	c, err := normalizeClient(c)
	if err != nil {
		return models.Client{}, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db,
		"UPDATE clients SET name = ?, email = ?, phone = ? WHERE id = ?",
		c.Name, c.Email, c.Phone, id,
	)
	if err != nil {
		return models.Client{}, err
	}
	if res.RowsAffected == 0 {
		return models.Client{}, notFound("cliente", id)
	}
	c.ID = id
	return c, nil
}

// DeleteClient elimina il cliente, i suoi progetti e i task di quei progetti in un'unica transazione
func (m *Manager) DeleteClient(ctx context.Context, id int64) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	// Prima i figli: l'ordine resta valido anche con le chiavi esterne attive
	return m.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := execute(ctx, tx,
			"DELETE FROM tasks WHERE projectId IN (SELECT id FROM projects WHERE clientId = ?)", id,
		); err != nil {
			return err
		}
		if _, err := execute(ctx, tx, "DELETE FROM projects WHERE clientId = ?", id); err != nil {
			return err
		}
		res, err := execute(ctx, tx, "DELETE FROM clients WHERE id = ?", id)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return notFound("cliente", id)
		}
		return nil
	})
}
