package db

import (
	"context"
	"database/sql"
	"strings"

	"gestionale-api/models"
)

const taskColumns = "id, title, projectId, status, dueDate, area, responsible, comments, files, history"

func scanTask(r rowScanner) (models.Task, error) {
	var t models.Task
	var title, status, dueDate, area, responsible sql.NullString
	var comments, files, history sql.NullString
	var projectID sql.NullInt64
	if err := r.Scan(&t.ID, &title, &projectID, &status, &dueDate, &area, &responsible,
		&comments, &files, &history); err != nil {
		return models.Task{}, err
	}
	t.Title, t.Status, t.DueDate = title.String, status.String, dueDate.String
	t.Area, t.Responsible = area.String, responsible.String
	t.ProjectID = nullableInt(projectID)

	var err error
	if t.Comments, err = decodeRecords[models.Comment](comments); err != nil {
		return models.Task{}, err
	}
	if t.Files, err = decodeRecords[models.FileRef](files); err != nil {
		return models.Task{}, err
	}
	if t.History, err = decodeRecords[models.HistoryEntry](history); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func normalizeTask(t models.Task) (models.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	t.Status = strings.TrimSpace(t.Status)
	t.Area = strings.TrimSpace(t.Area)
	t.Responsible = strings.TrimSpace(t.Responsible)
	t.Comments = emptyIfNil(t.Comments)
	t.Files = emptyIfNil(t.Files)
	t.History = emptyIfNil(t.History)
	return t, validateRecord(t)
}

// taskEmbedded serializza le tre liste incorporate nell'ordine delle colonne
func taskEmbedded(t models.Task) (comments, files, history string, err error) {
	if comments, err = encodeRecords(t.Comments); err != nil {
		return
	}
	if files, err = encodeRecords(t.Files); err != nil {
		return
	}
	history, err = encodeRecords(t.History)
	return
}

// ListTasks restituisce tutti i task con commenti, file e cronologia decodificati
func (m *Manager) ListTasks(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return fetchAll(ctx, m.db, scanTask, "SELECT "+taskColumns+" FROM tasks ORDER BY id")
}

// CreateTask inserisce un task e lo restituisce con l'id assegnato
func (m *Manager) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	t, err := normalizeTask(t)
	if err != nil {
		return models.Task{}, err
	}
	comments, files, history, err := taskEmbedded(t)
	if err != nil {
		return models.Task{}, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db,
		`INSERT INTO tasks (title, projectId, status, dueDate, area, responsible, comments, files, history)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.ProjectID, t.Status, t.DueDate, t.Area, t.Responsible, comments, files, history,
	)
	if err != nil {
		return models.Task{}, err
	}
	t.ID = res.LastInsertID
	return t, nil
}

// UpdateTask sostituisce tutti i campi modificabili del task, liste incorporate comprese
func (m *Manager) UpdateTask(ctx context.Context, id int64, t models.Task) (models.Task, error) {
	t, err := normalizeTask(t)
	if err != nil {
		return models.Task{}, err
	}
	comments, files, history, err := taskEmbedded(t)
	if err != nil {
		return models.Task{}, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db,
		`UPDATE tasks SET title = ?, projectId = ?, status = ?, dueDate = ?, area = ?, responsible = ?,
		 comments = ?, files = ?, history = ? WHERE id = ?`,
		t.Title, t.ProjectID, t.Status, t.DueDate, t.Area, t.Responsible, comments, files, history, id,
	)
	if err != nil {
		return models.Task{}, err
	}
	if res.RowsAffected == 0 {
		return models.Task{}, notFound("task", id)
	}
	t.ID = id
	return t, nil
}

// DeleteTask elimina un task
func (m *Manager) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return notFound("task", id)
	}
	return nil
}
