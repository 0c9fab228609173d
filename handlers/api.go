package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gestionale-api/db"
	"gestionale-api/models"
)

const defaultActivityLimit = 50

// events raccoglie gli effetti collaterali di una modifica riuscita:
// voce nel registro e notifica ai client WebSocket. Nessuno dei due può far fallire la richiesta.
type events struct {
	hub     *Hub
	journal ActivityJournal
}

func (e events) record(entity, action string, id any) {
	if e.journal == nil {
		return
	}
	if err := e.journal.Record(entity, action, fmt.Sprint(id)); err != nil {
		log.Warn().Err(err).Str("entity", entity).Str("action", action).Msg("📓 Errore nella scrittura del registro attività")
	}
}

func (e events) broadcast(messageType string, payload interface{}) {
	e.hub.Broadcast(messageType, payload)
}

// SetupAPIRoutes configura tutte le rotte API.
// hub e journal sono opzionali (nil li disabilita).
func SetupAPIRoutes(router *gin.Engine, dbManager DBManager, hub *Hub, journal ActivityJournal) {
	router.Use(CORS())

	ev := events{hub: hub, journal: journal}
	api := router.Group("/api")

	// Endpoint di test
	api.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Il backend funziona correttamente",
		})
	})

	registerUserRoutes(api, dbManager, ev)
	registerClientRoutes(api, dbManager, ev)
	registerProjectRoutes(api, dbManager, ev)
	registerTaskRoutes(api, dbManager, ev)
	registerLeadRoutes(api, dbManager, ev)
	registerNotificationRoutes(api, dbManager, ev)
	registerActivityRoutes(api, journal)

	if hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			hub.HandleWebSocket(c.Writer, c.Request)
		})
	}
}

func registerUserRoutes(api *gin.RouterGroup, dbManager DBManager, ev events) {
	api.GET("/users", func(c *gin.Context) {
		users, err := dbManager.ListUsers(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	})

	// Registrazione di un nuovo utente
	api.POST("/users/register", func(c *gin.Context) {
		var req models.RegisterRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := dbManager.RegisterUser(c.Request.Context(), req.Username, req.Password, req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("user", "register", user.ID)
		log.Info().Str("username", user.Username).Msg("👤 Nuovo utente registrato")
		c.JSON(http.StatusOK, user)
	})
}

func registerNotificationRoutes(api *gin.RouterGroup, dbManager DBManager, ev events) {
	api.GET("/notifications", func(c *gin.Context) {
		notifications, err := dbManager.ListNotifications(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, notifications)
	})

	api.POST("/notifications", func(c *gin.Context) {
		var body models.Notification
		if !bindJSON(c, &body) {
			return
		}
		n, err := dbManager.CreateNotification(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("notification", "create", n.ID)
		ev.broadcast(models.EventNotificationCreated, n)
		c.JSON(http.StatusOK, n)
	})

	// Segna la notifica come letta (nessun corpo richiesto)
	api.PUT("/notifications/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		n, err := dbManager.MarkNotificationRead(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		ev.record("notification", "read", n.ID)
		ev.broadcast(models.EventNotificationRead, n)
		c.JSON(http.StatusOK, gin.H{
			"message":      "Notifica segnata come letta",
			"notification": n,
		})
	})
}

func registerActivityRoutes(api *gin.RouterGroup, journal ActivityJournal) {
	api.GET("/activity", func(c *gin.Context) {
		if journal == nil {
			c.JSON(http.StatusOK, []models.Activity{})
			return
		}
		limit := defaultActivityLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				badRequest(c, "limit non valido")
				return
			}
			limit = n
		}
		entries, err := journal.Recent(limit)
		if err != nil {
			respondError(c, &db.Error{Kind: db.KindDatabase, Message: "Errore nella lettura del registro attività", Err: err})
			return
		}
		c.JSON(http.StatusOK, entries)
	})
}
