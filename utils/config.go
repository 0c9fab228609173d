package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Configurazione del database
type DatabaseConfig struct {
	Driver       string   `json:"driver" env:"DB_DRIVER"`
	Path         string   `json:"path" env:"DB_PATH"`
	Host         string   `json:"host" env:"DB_HOST"`
	Port         int      `json:"port" env:"DB_PORT"`
	User         string   `json:"user" env:"DB_USER"`
	Password     string   `json:"password" env:"DB_PASSWORD"`
	DBName       string   `json:"dbname" env:"DB_NAME"`
	QueryTimeout Duration `json:"queryTimeout" env:"DB_QUERY_TIMEOUT"`
}

// Configurazione del server
type ServerConfig struct {
	Port      int    `json:"port" env:"SERVER_PORT"`
	StaticDir string `json:"staticDir" env:"STATIC_DIR"`
}

// Configurazione del registro attività; path vuoto lo disabilita
type JournalConfig struct {
	Path string `json:"path" env:"JOURNAL_PATH"`
}

// Configurazione dei log
type LogConfig struct {
	Level string `json:"level" env:"LOG_LEVEL"`
	Env   string `json:"env" env:"APP_ENV"`
}

// Configurazione completa
type Config struct {
	Database DatabaseConfig `json:"database"`
	Server   ServerConfig   `json:"server"`
	Journal  JournalConfig  `json:"journal"`
	Log      LogConfig      `json:"log"`
}

// DefaultConfig restituisce la configurazione usata quando manca il file
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       "sqlite3",
			Path:         "meu_banco.db",
			Host:         "localhost",
			Port:         3306,
			QueryTimeout: Duration(5 * time.Second),
		},
		Server: ServerConfig{
			Port:      3000,
			StaticDir: "../frontend/public",
		},
		Journal: JournalConfig{Path: "activity.db"},
		Log:     LogConfig{Level: "info", Env: "dev"},
	}
}

// Carica la configurazione dal file, poi applica le variabili d'ambiente.
// Se il file non esiste si parte dai valori predefiniti.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.Open(filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// nessun file: solo valori predefiniti e ambiente
	case err != nil:
		return nil, fmt.Errorf("errore nell'apertura del file di configurazione: %w", err)
	default:
		defer file.Close()
		if err := json.NewDecoder(file).Decode(config); err != nil {
			return nil, fmt.Errorf("errore nella decodifica del file di configurazione: %w", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("errore nella lettura delle variabili d'ambiente: %w", err)
	}
	return config, nil
}

// Ottieni la stringa di connessione al database
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == "mysql" {
		// clientFoundRows: un UPDATE senza modifiche conta comunque la riga trovata
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&clientFoundRows=true",
			c.User, c.Password, c.Host, c.Port, c.DBName)
	}
	return fmt.Sprintf("file:%s?_foreign_keys=off&_busy_timeout=5000&_journal_mode=WAL", c.Path)
}

// Duration accetta "10s", "5m" oppure un numero di secondi
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := parseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return d.UnmarshalText([]byte(s))
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("durata vuota")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("durata non valida (es. 10s, 5m o numero di secondi): %w", err)
	}
	return d, nil
}
