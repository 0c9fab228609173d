package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestionale-api/models"
)

func registerClientRoutes(api *gin.RouterGroup, dbManager DBManager, ev events) {
	api.GET("/clients", func(c *gin.Context) {
		clients, err := dbManager.ListClients(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, clients)
	})

	api.POST("/clients", func(c *gin.Context) {
		var body models.Client
		if !bindJSON(c, &body) {
			return
		}
		client, err := dbManager.CreateClient(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("client", "create", client.ID)
		c.JSON(http.StatusOK, client)
	})

	api.PUT("/clients/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var body models.Client
		if !bindJSON(c, &body) {
			return
		}
		client, err := dbManager.UpdateClient(c.Request.Context(), id, body)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("client", "update", id)
		c.JSON(http.StatusOK, client)
	})

	// Elimina il cliente con i suoi progetti e i relativi task
	api.DELETE("/clients/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := dbManager.DeleteClient(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		ev.record("client", "delete", id)
		c.JSON(http.StatusOK, gin.H{"message": "Cliente eliminato"})
	})
}

func registerProjectRoutes(api *gin.RouterGroup, dbManager DBManager, ev events) {
	api.GET("/projects", func(c *gin.Context) {
		projects, err := dbManager.ListProjects(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
	})

	api.POST("/projects", func(c *gin.Context) {
		var body models.Project
		if !bindJSON(c, &body) {
			return
		}
		project, err := dbManager.CreateProject(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("project", "create", project.ID)
		c.JSON(http.StatusOK, project)
	})

	api.PUT("/projects/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var body models.Project
		if !bindJSON(c, &body) {
			return
		}
		project, err := dbManager.UpdateProject(c.Request.Context(), id, body)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("project", "update", id)
		c.JSON(http.StatusOK, project)
	})

	// Elimina il progetto e i suoi task
	api.DELETE("/projects/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := dbManager.DeleteProject(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		ev.record("project", "delete", id)
		c.JSON(http.StatusOK, gin.H{"message": "Progetto eliminato"})
	})
}

func registerTaskRoutes(api *gin.RouterGroup, dbManager DBManager, ev events) {
	api.GET("/tasks", func(c *gin.Context) {
		tasks, err := dbManager.ListTasks(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
	})

	api.POST("/tasks", func(c *gin.Context) {
		var body models.Task
		if !bindJSON(c, &body) {
			return
		}
		task, err := dbManager.CreateTask(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("task", "create", task.ID)
		c.JSON(http.StatusOK, task)
	})

	api.PUT("/tasks/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var body models.Task
		if !bindJSON(c, &body) {
			return
		}
		task, err := dbManager.UpdateTask(c.Request.Context(), id, body)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("task", "update", id)
		c.JSON(http.StatusOK, task)
	})

	api.DELETE("/tasks/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := dbManager.DeleteTask(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		ev.record("task", "delete", id)
		c.JSON(http.StatusOK, gin.H{"message": "Task eliminato"})
	})
}

func registerLeadRoutes(api *gin.RouterGroup, dbManager DBManager, ev events) {
	api.GET("/leads", func(c *gin.Context) {
		leads, err := dbManager.ListLeads(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, leads)
	})

	api.POST("/leads", func(c *gin.Context) {
		var body models.Lead
		if !bindJSON(c, &body) {
			return
		}
		lead, err := dbManager.CreateLead(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("lead", "create", lead.ID)
		c.JSON(http.StatusOK, lead)
	})

	api.PUT("/leads/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var body models.Lead
		if !bindJSON(c, &body) {
			return
		}
		lead, err := dbManager.UpdateLead(c.Request.Context(), id, body)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("lead", "update", id)
		c.JSON(http.StatusOK, lead)
	})

	api.DELETE("/leads/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := dbManager.DeleteLead(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		ev.record("lead", "delete", id)
		c.JSON(http.StatusOK, gin.H{"message": "Lead eliminato"})
	})

	api.POST("/leads/:id/interactions", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req models.InteractionRequest
		if !bindJSON(c, &req) {
			return
		}
		interaction, err := dbManager.AppendLeadInteraction(c.Request.Context(), id, req.Text)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("lead", "interaction", id)
		ev.broadcast(models.EventLeadInteraction, models.LeadInteractionEvent{LeadID: id, Interaction: interaction})
		c.JSON(http.StatusOK, gin.H{
			"message":     "Interazione aggiunta",
			"interaction": interaction,
		})
	})
}
