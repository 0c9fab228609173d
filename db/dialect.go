package db

import "fmt"

// dialect raccoglie le differenze SQL tra i driver supportati
type dialect struct {
	driver       string
	insertIgnore string
	// lockRows blocca le righe lette in una transazione; SQLite serializza già le scritture
	lockRows string
	schema   []string
}

var sqliteDialect = dialect{
	driver:       "sqlite3",
	insertIgnore: "INSERT OR IGNORE",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT,
			password TEXT,
			name TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			email TEXT,
			phone TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT,
			clientId INTEGER,
			status TEXT,
			deadline TEXT,
			FOREIGN KEY (clientId) REFERENCES clients(id)
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT,
			projectId INTEGER,
			status TEXT,
			dueDate TEXT,
			area TEXT,
			responsible TEXT,
			comments TEXT,
			files TEXT,
			history TEXT,
			FOREIGN KEY (projectId) REFERENCES projects(id)
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			email TEXT,
			phone TEXT,
			classification TEXT,
			status TEXT,
			responsible TEXT,
			source TEXT,
			estimatedValue REAL,
			reminder TEXT,
			interactions TEXT,
			createdAt TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			message TEXT,
			userId TEXT,
			read INTEGER DEFAULT 0,
			timestamp TEXT
		)`,
	},
}

// Niente chiavi esterne in MySQL: InnoDB le applicherebbe, mentre SQLite le ignora
// (DSN con _foreign_keys=off). Un progetto con clientId inesistente resta ammesso su entrambi.
var mysqlDialect = dialect{
	driver:       "mysql",
	insertIgnore: "INSERT IGNORE",
	lockRows:     " FOR UPDATE",
	schema: []string{
		"CREATE TABLE IF NOT EXISTS users (" +
			"id VARCHAR(64) PRIMARY KEY, " +
			"username VARCHAR(255), " +
			"password TEXT, " +
			"name TEXT, " +
			"UNIQUE INDEX idx_users_username (username))",
		"CREATE TABLE IF NOT EXISTS clients (" +
			"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
			"name TEXT, " +
			"email TEXT, " +
			"phone TEXT)",
		"CREATE TABLE IF NOT EXISTS projects (" +
			"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
			"title TEXT, " +
			"clientId BIGINT NULL, " +
			"status TEXT, " +
			"deadline TEXT, " +
			"INDEX idx_projects_client (clientId))",
		"CREATE TABLE IF NOT EXISTS tasks (" +
			"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
			"title TEXT, " +
			"projectId BIGINT NULL, " +
			"status TEXT, " +
			"dueDate TEXT, " +
			"area TEXT, " +
			"responsible TEXT, " +
			"comments LONGTEXT, " +
			"files LONGTEXT, " +
			"history LONGTEXT, " +
			"INDEX idx_tasks_project (projectId))",
		"CREATE TABLE IF NOT EXISTS leads (" +
			"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
			"name TEXT, " +
			"email TEXT, " +
			"phone TEXT, " +
			"classification TEXT, " +
			"status TEXT, " +
			"responsible TEXT, " +
			"source TEXT, " +
			"estimatedValue DOUBLE, " +
			"reminder TEXT, " +
			"interactions LONGTEXT, " +
			"createdAt VARCHAR(32))",
		"CREATE TABLE IF NOT EXISTS notifications (" +
			"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
			"message TEXT, " +
			"userId VARCHAR(64), " +
			"`read` TINYINT(1) DEFAULT 0, " +
			"timestamp VARCHAR(32))",
	},
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "", "sqlite3", "sqlite":
		return sqliteDialect, nil
	case "mysql":
		return mysqlDialect, nil
	default:
		return dialect{}, fmt.Errorf("driver database non supportato: %q", driver)
	}
}
