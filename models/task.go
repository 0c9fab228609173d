package models

import "encoding/json"

// Comment è un commento incorporato in un task
type Comment struct {
	ID        RecordID `json:"id,omitempty"`
	Text      string   `json:"text,omitempty" validate:"required_without=Extra"`
	User      string   `json:"user,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Extra     Extra    `json:"-"`
}

func (c Comment) MarshalJSON() ([]byte, error) {
	type plain Comment
	b, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, c.Extra)
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	type plain Comment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, "id", "text", "user", "timestamp")
	if err != nil {
		return err
	}
	p.Extra = extra
	*c = Comment(p)
	return nil
}

// FileRef è un riferimento a un file allegato a un task
type FileRef struct {
	ID         RecordID `json:"id,omitempty"`
	Name       string   `json:"name,omitempty" validate:"required_without=Extra"`
	URL        string   `json:"url,omitempty"`
	Size       int64    `json:"size,omitempty" validate:"gte=0"`
	UploadedAt string   `json:"uploadedAt,omitempty"`
	Extra      Extra    `json:"-"`
}

func (f FileRef) MarshalJSON() ([]byte, error) {
	type plain FileRef
	b, err := json.Marshal(plain(f))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, f.Extra)
}

func (f *FileRef) UnmarshalJSON(data []byte) error {
	type plain FileRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, "id", "name", "url", "size", "uploadedAt")
	if err != nil {
		return err
	}
	p.Extra = extra
	*f = FileRef(p)
	return nil
}

// HistoryEntry registra un cambio di stato di un task.
// Le voci vecchie senza status (es. {"from", "to"}) restano valide tramite Extra.
type HistoryEntry struct {
	ID             RecordID `json:"id,omitempty"`
	Status         string   `json:"status,omitempty" validate:"required_without=Extra"`
	PreviousStatus string   `json:"previousStatus,omitempty"`
	User           string   `json:"user,omitempty"`
	Timestamp      string   `json:"timestamp,omitempty"`
	Extra          Extra    `json:"-"`
}

func (h HistoryEntry) MarshalJSON() ([]byte, error) {
	type plain HistoryEntry
	b, err := json.Marshal(plain(h))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, h.Extra)
}

func (h *HistoryEntry) UnmarshalJSON(data []byte) error {
	type plain HistoryEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, "id", "status", "previousStatus", "user", "timestamp")
	if err != nil {
		return err
	}
	p.Extra = extra
	*h = HistoryEntry(p)
	return nil
}

// Task rappresenta un'attività di un progetto
type Task struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title" validate:"required"`
	ProjectID   *int64         `json:"projectId"`
	Status      string         `json:"status"`
	DueDate     string         `json:"dueDate"`
	Area        string         `json:"area"`
	Responsible string         `json:"responsible"`
	Comments    []Comment      `json:"comments" validate:"dive"`
	Files       []FileRef      `json:"files" validate:"dive"`
	History     []HistoryEntry `json:"history" validate:"dive"`
}
