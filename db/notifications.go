package db

import (
	"context"
	"database/sql"
	"strings"

	"gestionale-api/models"
)

// "read" è una parola riservata in MySQL, per questo è sempre tra backtick
const notificationColumns = "id, message, userId, `read`, timestamp"

func scanNotification(r rowScanner) (models.Notification, error) {
	var n models.Notification
	var message, userID, timestamp sql.NullString
	var read sql.NullInt64
	if err := r.Scan(&n.ID, &message, &userID, &read, &timestamp); err != nil {
		return models.Notification{}, err
	}
	n.Message, n.UserID = message.String, userID.String
	n.Read = read.Valid && read.Int64 != 0
	ts, err := models.ParseTimestamp(timestamp.String)
	if err != nil {
		return models.Notification{}, &Error{Kind: KindDatabase, Message: "timestamp salvato non valido", Err: err}
	}
	n.Timestamp = models.Timestamp{Time: ts}
	return n, nil
}

// ListNotifications restituisce tutte le notifiche
func (m *Manager) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return fetchAll(ctx, m.db, scanNotification, "SELECT "+notificationColumns+" FROM notifications ORDER BY id")
}

// CreateNotification inserisce una notifica non letta con il timestamp corrente
func (m *Manager) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.Message = strings.TrimSpace(n.Message)
	n.UserID = strings.TrimSpace(n.UserID)
	if err := validateRecord(n); err != nil {
		return models.Notification{}, err
	}
	now := models.NewTimestamp(m.now())
	timestamp := models.FormatTimestamp(now.Time)
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db,
		"INSERT INTO notifications (message, userId, `read`, timestamp) VALUES (?, ?, 0, ?)",
		n.Message, n.UserID, timestamp,
	)
	if err != nil {
		return models.Notification{}, err
	}
	n.ID = res.LastInsertID
	n.Read = false
	n.Timestamp = now
	return n, nil
}

// MarkNotificationRead segna la notifica come letta. Idempotente: non inverte lo stato.
func (m *Manager) MarkNotificationRead(ctx context.Context, id int64) (models.Notification, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var marked models.Notification
	err := m.withTx(ctx, func(tx *sql.Tx) error {
		res, err := execute(ctx, tx, "UPDATE notifications SET `read` = 1 WHERE id = ?", id)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return notFound("notifica", id)
		}
		var found bool
		marked, found, err = fetchOne(ctx, tx, scanNotification,
			"SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id)
		if err != nil {
			return err
		}
		if !found {
			return notFound("notifica", id)
		}
		return nil
	})
	if err != nil {
		return models.Notification{}, err
	}
	return marked, nil
}
