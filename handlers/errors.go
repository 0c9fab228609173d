package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gestionale-api/db"
)

// respondError traduce un errore del livello dati nella risposta HTTP corrispondente
func respondError(c *gin.Context, err error) {
	kind := db.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case db.KindValidation, db.KindConflict:
		status = http.StatusBadRequest
	case db.KindNotFound:
		status = http.StatusNotFound
	}

	message := "Errore interno del server"
	var e *db.Error
	if errors.As(err, &e) {
		message = e.Message
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("❌ Errore del database")
	}
	c.JSON(status, gin.H{"error": message, "kind": kind})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "kind": db.KindValidation})
}

// parseID legge il parametro :id; in caso di errore risponde 400 e restituisce false
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "ID non valido")
		return 0, false
	}
	return id, true
}

// bindJSON decodifica il corpo della richiesta; in caso di errore risponde 400 e restituisce false
func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		badRequest(c, "Formato JSON non valido")
		return false
	}
	return true
}
