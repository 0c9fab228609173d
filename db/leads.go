package db

import (
	"context"
	"database/sql"
	"strings"

	"gestionale-api/models"
)

// InteractionUser è l'autore fisso delle interazioni aggiunte via API
const InteractionUser = "admin"

const leadColumns = "id, name, email, phone, classification, status, responsible, source, estimatedValue, reminder, interactions, createdAt"

func scanLead(r rowScanner) (models.Lead, error) {
	var l models.Lead
	var name, email, phone, classification, status, responsible, source, reminder sql.NullString
	var interactions, createdAt sql.NullString
	var estimated sql.NullFloat64
	if err := r.Scan(&l.ID, &name, &email, &phone, &classification, &status, &responsible,
		&source, &estimated, &reminder, &interactions, &createdAt); err != nil {
		return models.Lead{}, err
	}
	l.Name, l.Email, l.Phone = name.String, email.String, phone.String
	l.Classification, l.Status, l.Responsible = classification.String, status.String, responsible.String
	l.Source, l.Reminder = source.String, reminder.String
	l.EstimatedValue = estimated.Float64

	var err error
	if l.Interactions, err = decodeRecords[models.Interaction](interactions); err != nil {
		return models.Lead{}, err
	}
	created, err := models.ParseTimestamp(createdAt.String)
	if err != nil {
		return models.Lead{}, &Error{Kind: KindDatabase, Message: "createdAt salvato non valido", Err: err}
	}
	l.CreatedAt = models.Timestamp{Time: created}
	return l, nil
}

func normalizeLead(l models.Lead) (models.Lead, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.Email = strings.TrimSpace(l.Email)
	l.Phone = strings.TrimSpace(l.Phone)
	l.Interactions = emptyIfNil(l.Interactions)
	return l, validateRecord(l)
}

// ListLeads restituisce tutti i lead con le interazioni decodificate
func (m *Manager) ListLeads(ctx context.Context) ([]models.Lead, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return fetchAll(ctx, m.db, scanLead, "SELECT "+leadColumns+" FROM leads ORDER BY id")
}

// CreateLead inserisce un lead; createdAt è impostato qui e non cambia più
func (m *Manager) CreateLead(ctx context.Context, l models.Lead) (models.Lead, error) {
	l, err := normalizeLead(l)
	if err != nil {
		return models.Lead{}, err
	}
	interactions, err := encodeRecords(l.Interactions)
	if err != nil {
		return models.Lead{}, err
	}
	created := models.NewTimestamp(m.now())
	createdAt := models.FormatTimestamp(created.Time)
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db,
		`INSERT INTO leads (name, email, phone, classification, status, responsible, source, estimatedValue, reminder, interactions, createdAt)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Name, l.Email, l.Phone, l.Classification, l.Status, l.Responsible, l.Source,
		l.EstimatedValue, l.Reminder, interactions, createdAt,
	)
	if err != nil {
		return models.Lead{}, err
	}
	l.ID = res.LastInsertID
	l.CreatedAt = created
	return l, nil
}

// UpdateLead sostituisce i campi modificabili; createdAt resta quello salvato
// e la risposta viene riletta dal database.
func (m *Manager) UpdateLead(ctx context.Context, id int64, l models.Lead) (models.Lead, error) {
	l, err := normalizeLead(l)
	if err != nil {
		return models.Lead{}, err
	}
	interactions, err := encodeRecords(l.Interactions)
	if err != nil {
		return models.Lead{}, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var updated models.Lead
	err = m.withTx(ctx, func(tx *sql.Tx) error {
		res, err := execute(ctx, tx,
			`UPDATE leads SET name = ?, email = ?, phone = ?, classification = ?, status = ?, responsible = ?,
			 source = ?, estimatedValue = ?, reminder = ?, interactions = ? WHERE id = ?`,
			l.Name, l.Email, l.Phone, l.Classification, l.Status, l.Responsible, l.Source,
			l.EstimatedValue, l.Reminder, interactions, id,
		)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return notFound("lead", id)
		}
		var found bool
		updated, found, err = fetchOne(ctx, tx, scanLead, "SELECT "+leadColumns+" FROM leads WHERE id = ?", id)
		if err != nil {
			return err
		}
		if !found {
			return notFound("lead", id)
		}
		return nil
	})
	if err != nil {
		return models.Lead{}, err
	}
	return updated, nil
}

// DeleteLead elimina un lead
func (m *Manager) DeleteLead(ctx context.Context, id int64) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	res, err := execute(ctx, m.db, "DELETE FROM leads WHERE id = ?", id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return notFound("lead", id)
	}
	return nil
}

// AppendLeadInteraction aggiunge un'interazione in coda a quelle del lead.
// Lettura, modifica e scrittura avvengono nella stessa transazione.
func (m *Manager) AppendLeadInteraction(ctx context.Context, leadID int64, text string) (models.Interaction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Interaction{}, validationError("text obbligatorio")
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	added := models.Interaction{
		ID:        models.RecordID(m.newID()),
		Text:      text,
		User:      InteractionUser,
		Timestamp: models.FormatTimestamp(m.now()),
	}
	err := m.withTx(ctx, func(tx *sql.Tx) error {
		raw, found, err := fetchOne(ctx, tx, func(r rowScanner) (sql.NullString, error) {
			var s sql.NullString
			err := r.Scan(&s)
			return s, err
		}, "SELECT interactions FROM leads WHERE id = ?", leadID)
		if err != nil {
			return err
		}
		if !found {
			return notFound("lead", leadID)
		}

		interactions, err := decodeRecords[models.Interaction](raw)
		if err != nil {
			return err
		}
		encoded, err := encodeRecords(append(interactions, added))
		if err != nil {
			return err
		}
		_, err = execute(ctx, tx, "UPDATE leads SET interactions = ? WHERE id = ?", encoded, leadID)
		return err
	})
	if err != nil {
		return models.Interaction{}, err
	}
	return added, nil
}
