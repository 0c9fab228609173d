package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"

	"gestionale-api/models"
)

func newTestManager(t *testing.T) *Manager {
	return newTestManagerWithParams(t, "_busy_timeout=5000")
}

func newTestManagerWithParams(t *testing.T, params string) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	m, err := NewManager(Options{Driver: "sqlite3", DSN: "file:" + path + "?" + params, QueryTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	t.Cleanup(func() {
		if err := m.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	if err := m.InitTables(context.Background()); err != nil {
		t.Fatalf("init tables: %v", err)
	}
	return m
}

func ptr(v int64) *int64 { return &v }

func TestNewManagerRejectsUnknownDriver(t *testing.T) {
	if _, err := NewManager(Options{Driver: "postgres", DSN: "x"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestInitTablesIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	if err := m.InitTables(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}

	users, err := m.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("users = %d, want 1", len(users))
	}
	if users[0].ID != "1" || users[0].Username != "admin" {
		t.Fatalf("seed user = %+v", users[0])
	}

	for _, table := range []string{"users", "clients", "projects", "tasks", "leads", "notifications"} {
		var name string
		err := m.GetDB().QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestCreateThenListReturnsFreshIDs(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	first, err := m.CreateClient(ctx, models.Client{Name: "Acme", Email: "a@x.com", Phone: "123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := m.CreateClient(ctx, models.Client{Name: "Globex"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == 0 || second.ID == 0 || first.ID == second.ID {
		t.Fatalf("ids = %d, %d", first.ID, second.ID)
	}

	list, err := m.ListClients(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("clients = %d, want 2", len(list))
	}
	if list[0] != first {
		t.Fatalf("listed = %+v, want %+v", list[0], first)
	}
}

func TestListOnEmptyTablesReturnsEmptySlices(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	tasks, err := m.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("tasks = %#v, want empty slice", tasks)
	}
	leads, err := m.ListLeads(ctx)
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if leads == nil || len(leads) != 0 {
		t.Fatalf("leads = %#v, want empty slice", leads)
	}
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.CreateClient(ctx, models.Client{Name: "   "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("client err = %v, want validation", err)
	}
	if _, err := m.CreateProject(ctx, models.Project{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("project err = %v, want validation", err)
	}
	_, err := m.CreateTask(ctx, models.Task{Title: "t", Comments: []models.Comment{{User: "bob"}}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("task err = %v, want validation", err)
	}
	if _, err := m.CreateNotification(ctx, models.Notification{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("notification err = %v, want validation", err)
	}
	_, err = m.CreateLead(ctx, models.Lead{Name: "Delta", EstimatedValue: -1})
	if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "estimatedValue") {
		t.Fatalf("lead err = %v, want validation on estimatedValue", err)
	}
}

func TestUpdateAndDeleteUnknownIDReturnNotFound(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.UpdateClient(ctx, 99, models.Client{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update client err = %v", err)
	}
	if _, err := m.UpdateProject(ctx, 99, models.Project{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update project err = %v", err)
	}
	if _, err := m.UpdateTask(ctx, 99, models.Task{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update task err = %v", err)
	}
	if _, err := m.UpdateLead(ctx, 99, models.Lead{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update lead err = %v", err)
	}
	for name, del := range map[string]func(context.Context, int64) error{
		"client":  m.DeleteClient,
		"project": m.DeleteProject,
		"task":    m.DeleteTask,
		"lead":    m.DeleteLead,
	} {
		if err := del(ctx, 99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("delete %s err = %v, want not found", name, err)
		}
	}
}

func TestUpdateClientReplacesAllFields(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	c, err := m.CreateClient(ctx, models.Client{Name: "Acme", Email: "a@x.com", Phone: "123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := m.UpdateClient(ctx, c.ID, models.Client{Name: "Acme Srl"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := models.Client{ID: c.ID, Name: "Acme Srl"}
	if updated != want {
		t.Fatalf("updated = %+v, want %+v", updated, want)
	}
	list, _ := m.ListClients(ctx)
	if list[0] != want {
		t.Fatalf("stored = %+v, want %+v", list[0], want)
	}
}

func TestDeleteClientCascadesToProjectsAndTasks(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	acme, _ := m.CreateClient(ctx, models.Client{Name: "Acme"})
	other, _ := m.CreateClient(ctx, models.Client{Name: "Other"})
	site, err := m.CreateProject(ctx, models.Project{Title: "Site", ClientID: ptr(acme.ID)})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	keep, _ := m.CreateProject(ctx, models.Project{Title: "Keep", ClientID: ptr(other.ID)})
	orphan, _ := m.CreateProject(ctx, models.Project{Title: "No client"})
	if _, err := m.CreateTask(ctx, models.Task{Title: "Design", ProjectID: ptr(site.ID)}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	keptTask, _ := m.CreateTask(ctx, models.Task{Title: "Deploy", ProjectID: ptr(keep.ID)})

	if err := m.DeleteClient(ctx, acme.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}

	clients, _ := m.ListClients(ctx)
	if len(clients) != 1 || clients[0].ID != other.ID {
		t.Fatalf("clients = %+v", clients)
	}
	projects, _ := m.ListProjects(ctx)
	if len(projects) != 2 || projects[0].ID != keep.ID || projects[1].ID != orphan.ID {
		t.Fatalf("projects = %+v", projects)
	}
	tasks, _ := m.ListTasks(ctx)
	if len(tasks) != 1 || tasks[0].ID != keptTask.ID {
		t.Fatalf("tasks = %+v", tasks)
	}
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	p1, _ := m.CreateProject(ctx, models.Project{Title: "One"})
	p2, _ := m.CreateProject(ctx, models.Project{Title: "Two"})
	m.CreateTask(ctx, models.Task{Title: "a", ProjectID: ptr(p1.ID)})
	m.CreateTask(ctx, models.Task{Title: "b", ProjectID: ptr(p1.ID)})
	kept, _ := m.CreateTask(ctx, models.Task{Title: "c", ProjectID: ptr(p2.ID)})

	if err := m.DeleteProject(ctx, p1.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	projects, _ := m.ListProjects(ctx)
	if len(projects) != 1 || projects[0].ID != p2.ID {
		t.Fatalf("projects = %+v", projects)
	}
	tasks, _ := m.ListTasks(ctx)
	if len(tasks) != 1 || tasks[0].ID != kept.ID {
		t.Fatalf("tasks = %+v", tasks)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := execute(ctx, tx, "INSERT INTO clients (name) VALUES (?)", "ghost"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	clients, _ := m.ListClients(ctx)
	if len(clients) != 0 {
		t.Fatalf("clients = %+v, want rollback", clients)
	}
}

func TestTaskEmbeddedFieldsRoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	in := models.Task{
		Title:    "Landing page",
		Status:   "todo",
		Comments: []models.Comment{{ID: "c1", Text: "first", User: "ana", Timestamp: "2024-05-01T10:00:00.000Z"}},
		Files:    []models.FileRef{{ID: "f1", Name: "brief.pdf", URL: "/files/brief.pdf", Size: 2048}},
		History:  []models.HistoryEntry{{Status: "todo", User: "ana"}},
	}
	created, err := m.CreateTask(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	tasks, err := m.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != created.ID || !reflect.DeepEqual(got.Comments, in.Comments) || !reflect.DeepEqual(got.Files, in.Files) || !reflect.DeepEqual(got.History, in.History) {
		t.Fatalf("stored task = %+v", got)
	}
}

func TestTaskWithNullEmbeddedColumnsDecodesEmpty(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.GetDB().Exec("INSERT INTO tasks (title, comments, files, history) VALUES (?, NULL, '', 'null')", "legacy"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	tasks, err := m.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := tasks[0]
	if got.Comments == nil || got.Files == nil || got.History == nil {
		t.Fatalf("embedded lists must be non-nil: %+v", got)
	}
	if len(got.Comments)+len(got.Files)+len(got.History) != 0 {
		t.Fatalf("expected empty lists: %+v", got)
	}
}

func TestMalformedStoredJSONIsDatabaseError(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.GetDB().Exec("INSERT INTO tasks (title, comments) VALUES (?, ?)", "broken", "{not json"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := m.ListTasks(context.Background()); !errors.Is(err, ErrDatabase) {
		t.Fatalf("err = %v, want database error", err)
	}
}

func TestRegisterUserRejectsDuplicateUsername(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	first, err := m.RegisterUser(ctx, "maria", "segreta", "Maria Rossi")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if first.ID == "" || first.ID == "1" {
		t.Fatalf("id = %q", first.ID)
	}
	if _, err := m.RegisterUser(ctx, "maria", "altra", "Impostora"); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}

	users, _ := m.ListUsers(ctx)
	var found []models.User
	for _, u := range users {
		if u.Username == "maria" {
			found = append(found, u)
		}
	}
	if len(found) != 1 || found[0] != first {
		t.Fatalf("maria = %+v, want %+v", found, first)
	}
}

func TestRegisterUserRejectsSeededAdmin(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.RegisterUser(context.Background(), "admin", "x", "Another admin"); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestAppendLeadInteraction(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	seq := 0
	m.newID = func() string {
		seq++
		return "id-" + strconv.Itoa(seq)
	}

	prior := []models.Interaction{
		{ID: "a", Text: "call", User: "admin", Timestamp: "2025-01-01T10:00:00.000Z"},
		{ID: "b", Text: "email", User: "admin", Timestamp: "2025-01-02T10:00:00.000Z"},
	}
	lead, err := m.CreateLead(ctx, models.Lead{Name: "Beta", Interactions: prior})
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}

	added, err := m.AppendLeadInteraction(ctx, lead.ID, "  meeting  ")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	want := models.Interaction{ID: "id-1", Text: "meeting", User: "admin", Timestamp: "2025-03-01T09:30:00.000Z"}
	if !reflect.DeepEqual(added, want) {
		t.Fatalf("added = %+v, want %+v", added, want)
	}

	leads, _ := m.ListLeads(ctx)
	got := leads[0].Interactions
	if !reflect.DeepEqual(got, append(prior, want)) {
		t.Fatalf("interactions = %+v", got)
	}
}

func TestAppendLeadInteractionUnknownLead(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.AppendLeadInteraction(context.Background(), 42, "hello"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAppendLeadInteractionAcceptsLegacyNumericIDs(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	legacy := `[{"id":1714557600000,"text":"call","user":"admin","timestamp":"2024-05-01T10:00:00.000Z"}]`
	res, err := m.GetDB().Exec("INSERT INTO leads (name, interactions, createdAt) VALUES (?, ?, ?)", "Legacy", legacy, "2024-05-01T10:00:00.000Z")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id, _ := res.LastInsertId()

	if _, err := m.AppendLeadInteraction(ctx, id, "follow-up"); err != nil {
		t.Fatalf("append: %v", err)
	}
	leads, _ := m.ListLeads(ctx)
	got := leads[0].Interactions
	if len(got) != 2 || got[0].ID != "1714557600000" || got[1].Text != "follow-up" {
		t.Fatalf("interactions = %+v", got)
	}
}

func TestUpdateLeadPreservesCreatedAt(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return created }

	lead, err := m.CreateLead(ctx, models.Lead{Name: "Gamma", EstimatedValue: 1500.5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !lead.CreatedAt.Equal(created) {
		t.Fatalf("createdAt = %v, want %v", lead.CreatedAt, created)
	}

	m.now = func() time.Time { return created.Add(48 * time.Hour) }
	updated, err := m.UpdateLead(ctx, lead.ID, models.Lead{
		Name:      "Gamma Spa",
		Status:    "qualified",
		CreatedAt: models.NewTimestamp(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Fatalf("createdAt after update = %v, want %v", updated.CreatedAt, created)
	}
	if updated.Name != "Gamma Spa" || updated.Status != "qualified" || updated.EstimatedValue != 0 {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.Interactions == nil {
		t.Fatal("interactions must be an empty slice")
	}
}

func TestMarkNotificationReadIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	n, err := m.CreateNotification(ctx, models.Notification{Message: "Nuovo lead", UserID: "1", Read: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.Read {
		t.Fatal("new notifications must be unread")
	}
	if n.Timestamp.IsZero() {
		t.Fatal("timestamp must be set")
	}

	for i := 0; i < 2; i++ {
		marked, err := m.MarkNotificationRead(ctx, n.ID)
		if err != nil {
			t.Fatalf("mark read #%d: %v", i+1, err)
		}
		if !marked.Read {
			t.Fatalf("mark read #%d: read = false", i+1)
		}
	}

	list, _ := m.ListNotifications(ctx)
	if len(list) != 1 || !list[0].Read {
		t.Fatalf("notifications = %+v", list)
	}
	if _, err := m.MarkNotificationRead(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestTaskKeepsUnknownEmbeddedFields(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	var in models.Task
	body := `{"title":"Brief","comments":[{"text":"hi","author":"ana","date":"2024"}],"files":[{"name":"a.pdf","mime":"application/pdf"}]}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	created, err := m.CreateTask(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var stored string
	if err := m.GetDB().QueryRow("SELECT comments FROM tasks WHERE id = ?", created.ID).Scan(&stored); err != nil {
		t.Fatalf("select: %v", err)
	}
	var comments []map[string]any
	if err := json.Unmarshal([]byte(stored), &comments); err != nil {
		t.Fatalf("stored comments %q: %v", stored, err)
	}
	want := []map[string]any{{"text": "hi", "author": "ana", "date": "2024"}}
	if !reflect.DeepEqual(comments, want) {
		t.Fatalf("stored comments = %v, want %v", comments, want)
	}

	tasks, err := m.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	out, err := json.Marshal(tasks[0].Files)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `[{"mime":"application/pdf","name":"a.pdf"}]` {
		t.Fatalf("files = %s", out)
	}
}

func TestLegacyHistoryShapeDoesNotBreakListing(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.GetDB().Exec("INSERT INTO tasks (title, history) VALUES (?, ?)", "legacy", `[{"from":"todo","to":"done"}]`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := m.CreateTask(ctx, models.Task{Title: "nuovo"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := m.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(tasks))
	}
	entry := tasks[0].History[0]
	if string(entry.Extra["from"]) != `"todo"` || string(entry.Extra["to"]) != `"done"` {
		t.Fatalf("history entry = %+v", entry)
	}

	// Risalvare il task non perde la forma originale
	if _, err := m.UpdateTask(ctx, tasks[0].ID, tasks[0]); err != nil {
		t.Fatalf("update: %v", err)
	}
	var stored string
	if err := m.GetDB().QueryRow("SELECT history FROM tasks WHERE id = ?", tasks[0].ID).Scan(&stored); err != nil {
		t.Fatalf("select: %v", err)
	}
	if stored != `[{"from":"todo","to":"done"}]` {
		t.Fatalf("stored history = %s", stored)
	}
}

func TestQueryTimeoutWhileConnectionIsBusy(t *testing.T) {
	m := newTestManager(t)
	m.timeout = 100 * time.Millisecond

	// SQLite usa una sola connessione: la transazione aperta la tiene occupata
	tx, err := m.GetDB().Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	start := time.Now()
	_, err = m.ListClients(context.Background())
	elapsed := time.Since(start)
	if !errors.Is(err, ErrDatabase) {
		t.Fatalf("err = %v, want database error", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("ListClients took %v, timeout not applied", elapsed)
	}
}

func TestLegacyLeadWithoutCreatedAt(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	m.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	if _, err := m.GetDB().Exec("INSERT INTO leads (name, createdAt) VALUES (?, NULL)", "Legacy"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := m.CreateLead(ctx, models.Lead{Name: "Nuovo"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	leads, err := m.ListLeads(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	legacy, err := json.Marshal(leads[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(legacy), "createdAt") {
		t.Fatalf("legacy lead should omit createdAt: %s", legacy)
	}
	fresh, err := json.Marshal(leads[1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(fresh), `"createdAt":"2024-06-01T12:00:00.000Z"`) {
		t.Fatalf("createdAt not in stored layout: %s", fresh)
	}
}

func TestCascadeDeletesWithForeignKeysEnabled(t *testing.T) {
	m := newTestManagerWithParams(t, "_foreign_keys=on&_busy_timeout=5000")
	ctx := context.Background()

	client, _ := m.CreateClient(ctx, models.Client{Name: "Acme"})
	site, err := m.CreateProject(ctx, models.Project{Title: "Site", ClientID: ptr(client.ID)})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := m.CreateTask(ctx, models.Task{Title: "Design", ProjectID: ptr(site.ID)}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	other, _ := m.CreateProject(ctx, models.Project{Title: "Other"})
	if _, err := m.CreateTask(ctx, models.Task{Title: "Deploy", ProjectID: ptr(other.ID)}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := m.DeleteClient(ctx, client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	if err := m.DeleteProject(ctx, other.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	tasks, _ := m.ListTasks(ctx)
	projects, _ := m.ListProjects(ctx)
	if len(tasks) != 0 || len(projects) != 0 {
		t.Fatalf("tasks = %+v, projects = %+v", tasks, projects)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	m := newTestManager(t)
	conn := m.GetDB()
	if _, err := conn.Exec("CREATE UNIQUE INDEX idx_test_username ON users (username)"); err != nil {
		t.Fatalf("create index: %v", err)
	}
	_, err := conn.Exec("INSERT INTO users (id, username, password, name) VALUES ('2', 'admin', 'x', 'x')")
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !isDuplicateKey(dbError("insert", err)) {
		t.Fatalf("sqlite error %v not recognized", err)
	}

	if !isDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}) {
		t.Fatal("mysql 1062 not recognized")
	}
	if isDuplicateKey(&mysql.MySQLError{Number: 1213}) || isDuplicateKey(errors.New("boom")) {
		t.Fatal("unrelated errors must not be duplicates")
	}
	if mysqlDialect.lockRows != " FOR UPDATE" || sqliteDialect.lockRows != "" {
		t.Fatalf("lockRows: mysql %q, sqlite %q", mysqlDialect.lockRows, sqliteDialect.lockRows)
	}
}
