package db

import (
	"context"
	"database/sql"
	"strings"

	"gestionale-api/models"
)

const projectColumns = "id, title, clientId, status, deadline"

func scanProject(r rowScanner) (models.Project, error) {
	var p models.Project
	var title, status, deadline sql.NullString
	var clientID sql.NullInt64
	if err := r.Scan(&p.ID, &title, &clientID, &status, &deadline); err != nil {
		return models.Project{}, err
	}
	p.Title, p.Status, p.Deadline = title.String, status.String, deadline.String
	p.ClientID = nullableInt(clientID)
	return p, nil
}

func normalizeProject(p models.Project) (models.Project, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Status = strings.TrimSpace(p.Status)
	p.Deadline = strings.TrimSpace(p.Deadline)
	return p, validateRecord(p)
}

// ListProjects restituisce tutti i progetti
func (m *Manager) ListProjects(ctx context.Context) ([]models.Project, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return fetchAll(ctx, m.db, scanProject, "SELECT "+projectColumns+" FROM projects ORDER BY id")
}

// CreateProject inserisce un progetto e lo restituisce con l'id assegnato
func (m *Manager) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	p, err := normalizeProject(p)
	if err != nil {
		return models.Project{}, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db,
		"INSERT INTO projects (title, clientId, status, deadline) VALUES (?, ?, ?, ?)",
		p.Title, p.ClientID, p.Status, p.Deadline,
	)
	if err != nil {
		return models.Project{}, err
	}
	p.ID = res.LastInsertID
	return p, nil
}

// UpdateProject sostituisce tutti i campi modificabili del progetto
func (m *Manager) UpdateProject(ctx context.Context, id int64, p models.Project) (models.Project, error) {
	p, err := normalizeProject(p)
	if err != nil {
		return models.Project{}, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db,
		"UPDATE projects SET title = ?, clientId = ?, status = ?, deadline = ? WHERE id = ?",
		p.Title, p.ClientID, p.Status, p.Deadline, id,
	)
	if err != nil {
		return models.Project{}, err
	}
	if res.RowsAffected == 0 {
		return models.Project{}, notFound("progetto", id)
	}
	p.ID = id
	return p, nil
}

// DeleteProject elimina il progetto e i suoi task in un'unica transazione
func (m *Manager) DeleteProject(ctx context.Context, id int64) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	return m.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := execute(ctx, tx, "DELETE FROM tasks WHERE projectId = ?", id); err != nil {
			return err
		}
		res, err := execute(ctx, tx, "DELETE FROM projects WHERE id = ?", id)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return notFound("progetto", id)
		}
		return nil
	})
}
