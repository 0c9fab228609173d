package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout è il formato ISO-8601 (UTC, millisecondi) usato per tutte le date salvate come testo
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp converte un istante nel formato testuale salvato nel database
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp legge una data salvata come testo. Una stringa vuota restituisce il tempo zero.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp non valido %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Timestamp è un istante serializzato sempre in TimestampLayout, come nel database.
// Il valore zero (es. createdAt NULL di righe vecchie) viene omesso con omitzero.
type Timestamp struct {
	time.Time
}

// NewTimestamp tronca ai millisecondi, la precisione salvata
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(FormatTimestamp(t.Time))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp deve essere una stringa: %w", err)
	}
	if s == nil {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(*s)
	if err != nil {
		return err
	}
	*t = Timestamp{Time: parsed}
	return nil
}

// RecordID identifica un elemento di una lista incorporata (commento, file, interazione...).
// I record salvati dal vecchio frontend usano numeri (Date.now()), quelli nuovi stringhe:
// entrambi vengono accettati e riscritti sempre come stringa.
type RecordID string

func (id *RecordID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id deve essere una stringa o un numero: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}
