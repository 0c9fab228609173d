package handlers

import (
	"context"

	"gestionale-api/models"
)

// DBManager è un'interfaccia che definisce i metodi necessari per interagire con il database
type DBManager interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	RegisterUser(ctx context.Context, username, password, name string) (models.User, error)

	ListClients(ctx context.Context) ([]models.Client, error)
	CreateClient(ctx context.Context, c models.Client) (models.Client, error)
	UpdateClient(ctx context.Context, id int64, c models.Client) (models.Client, error)
	DeleteClient(ctx context.Context, id int64) error

	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, id int64, p models.Project) (models.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, t models.Task) (models.Task, error)
	UpdateTask(ctx context.Context, id int64, t models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	ListLeads(ctx context.Context) ([]models.Lead, error)
	CreateLead(ctx context.Context, l models.Lead) (models.Lead, error)
	UpdateLead(ctx context.Context, id int64, l models.Lead) (models.Lead, error)
	DeleteLead(ctx context.Context, id int64) error
	AppendLeadInteraction(ctx context.Context, leadID int64, text string) (models.Interaction, error)

	ListNotifications(ctx context.Context) ([]models.Notification, error)
	CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) (models.Notification, error)
}

// ActivityJournal registra le modifiche eseguite tramite API
type ActivityJournal interface {
	Record(entity, action, entityID string) error
	Recent(limit int) ([]models.Activity, error)
}
