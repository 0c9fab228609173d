package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gestionale-api/db"
	"gestionale-api/handlers"
	"gestionale-api/persistence"
	"gestionale-api/utils"
)

func main() {
	configPath := flag.String("config", "config.json", "percorso del file di configurazione")
	flag.Parse()

	// Carica la configurazione
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Errore nel caricamento della configurazione:", err)
		os.Exit(1)
	}
	utils.SetupLogger(config.Log)

	// Inizializza il database
	dbManager, err := db.NewManager(db.Options{
		Driver:       config.Database.Driver,
		DSN:          config.Database.GetDSN(),
		QueryTimeout: config.Database.QueryTimeout.Std(),
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", config.Database.Driver).Msg("❌ Errore nella connessione al database")
	}
	defer dbManager.Close()

	// Inizializza le tabelle
	if err := dbManager.InitTables(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("❌ Errore nell'inizializzazione delle tabelle")
	}
	log.Info().Str("driver", config.Database.Driver).Msg("✅ Database pronto")

	// Registro attività opzionale; un'interfaccia nil lo disabilita
	var journal handlers.ActivityJournal
	if config.Journal.Path != "" {
		j, err := persistence.OpenJournal(config.Journal.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", config.Journal.Path).Msg("❌ Errore nell'apertura del registro attività")
		}
		defer j.Close()
		journal = j
	}

	hub := handlers.NewHub()

	if config.Log.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger())

	handlers.SetupAPIRoutes(router, dbManager, hub, journal)
	handlers.SetupStaticRoutes(router, config.Server.StaticDir)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Avvia il server HTTP in una goroutine
	go func() {
		log.Info().Msgf("🚀 Server in esecuzione su http://localhost:%d", config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ Errore nell'avvio del server")
		}
	}()

	// Gestisci chiusura corretta
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Arresto del server...")
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("❌ Errore durante l'arresto del server")
	}
}
