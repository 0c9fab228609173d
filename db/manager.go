package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Utente predefinito creato al primo avvio
const (
	defaultUserID       = "1"
	defaultUserUsername = "admin"
	defaultUserPassword = "admin123"
	defaultUserName     = "Admin User"
)

// Options configura il Manager
type Options struct {
	Driver       string
	DSN          string
	QueryTimeout time.Duration
}

// Manager è il livello di accesso ai dati: un'unica connessione condivisa,
// iniettata negli handler tramite l'interfaccia handlers.DBManager.
type Manager struct {
	db      *sql.DB
	dialect dialect
	timeout time.Duration

	now   func() time.Time
	newID func() string
}

// Crea una nuova istanza del gestore del database
func NewManager(opts Options) (*Manager, error) {
	d, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("apertura database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Verifica la connessione
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Imposta i parametri di connessione
	if d.driver == "sqlite3" {
		// Un solo writer alla volta: le transazioni non incontrano mai SQLITE_BUSY
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	return &Manager{
		db:      db,
		dialect: d,
		timeout: opts.QueryTimeout,
		now:     time.Now,
		newID:   uuid.NewString,
	}, nil
}

// GetDB restituisce l'handle condiviso
func (m *Manager) GetDB() *sql.DB {
	return m.db
}

// InitTables crea le tabelle se non esistono e inserisce l'utente predefinito.
// Può essere eseguita a ogni avvio senza duplicare dati.
func (m *Manager) InitTables(ctx context.Context) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	for _, stmt := range m.dialect.schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("errore nella creazione delle tabelle: %w", err)
		}
	}

	res, err := execute(ctx, m.db,
		m.dialect.insertIgnore+" INTO users (id, username, password, name) VALUES (?, ?, ?, ?)",
		defaultUserID, defaultUserUsername, defaultUserPassword, defaultUserName,
	)
	if err != nil {
		return fmt.Errorf("errore nell'inserimento dell'utente predefinito: %w", err)
	}
	if res.RowsAffected > 0 {
		log.Info().Str("username", defaultUserUsername).Msg("👤 Utente predefinito creato")
	}
	return nil
}

// withTimeout limita la durata di ogni operazione; con timeout <= 0 il contesto resta invariato
func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.timeout)
}

// withTx esegue fn in una transazione: commit se fn non fallisce, rollback altrimenti
func (m *Manager) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError("errore nell'apertura della transazione", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("❌ Errore nel rollback della transazione")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return dbError("errore nel commit della transazione", err)
	}
	return nil
}

// Chiude la connessione al database
func (m *Manager) Close() error {
	return m.db.Close()
}
