package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gestionale-api/db"
)

// SetupStaticRoutes serve il frontend dalla cartella dir per tutti i percorsi non gestiti dalle API
func SetupStaticRoutes(router *gin.Engine, dir string) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Risorsa non trovata", "kind": db.KindNotFound})
	}

	info, err := os.Stat(dir)
	if dir == "" || err != nil || !info.IsDir() {
		if dir != "" {
			log.Warn().Str("dir", dir).Msg("📁 Cartella del frontend non trovata, file statici disabilitati")
		}
		router.NoRoute(notFound)
		return
	}

	fileServer := http.FileServer(http.Dir(dir))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			notFound(c)
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			notFound(c)
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})
	log.Info().Str("dir", dir).Msg("📁 Frontend servito come file statici")
}
