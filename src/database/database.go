package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/neurobalance/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migratePaymentsTable()

	// Amounts are stored as TEXT: decimal strings survive the round trip
	// exactly, REAL does not.
	createTableStatement := `
	CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		nif TEXT,
		status TEXT DEFAULT 'ativo',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS import_batches (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		period TEXT NOT NULL,
		filename TEXT,
		rows_seen INTEGER NOT NULL DEFAULT 0,
		rows_accepted INTEGER NOT NULL DEFAULT 0,
		rows_skipped INTEGER NOT NULL DEFAULT 0,
		coerced_cells INTEGER NOT NULL DEFAULT 0,
		matched_count INTEGER NOT NULL DEFAULT 0,
		unmatched_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reconciled_payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		period TEXT NOT NULL,
		row_index INTEGER NOT NULL,
		date TEXT,
		client_name_raw TEXT,
		fiscal_id_raw TEXT,
		category TEXT,
		description TEXT,
		invoice_ref TEXT,
		installment_label TEXT,
		status TEXT,
		method TEXT,
		base_amount TEXT NOT NULL DEFAULT '0',
		tax_amount TEXT NOT NULL DEFAULT '0',
		withholding_amount TEXT NOT NULL DEFAULT '0',
		total_amount TEXT NOT NULL DEFAULT '0',
		matched_client_id INTEGER,
		hash_id TEXT,
		FOREIGN KEY(batch_id) REFERENCES import_batches(id),
		FOREIGN KEY(matched_client_id) REFERENCES clients(id),
		UNIQUE(period, hash_id)
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

func migratePaymentsTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='reconciled_payments'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			if logger.L != nil {
				logger.L.Info("'reconciled_payments' table does not exist, no migration needed as table will be created.")
			} else {
				stdlog.Println("'reconciled_payments' table does not exist, no migration needed as table will be created.")
			}
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'reconciled_payments' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'reconciled_payments' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(reconciled_payments)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'reconciled_payments'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'reconciled_payments': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'reconciled_payments'", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for 'reconciled_payments': %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'reconciled_payments'", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for 'reconciled_payments': %v", err)
		}
		return
	}

	if _, ok := columnExists["installment_label"]; !ok {
		_, err := DB.Exec("ALTER TABLE reconciled_payments ADD COLUMN installment_label TEXT")
		if err != nil {
			logger.L.Error("Error adding 'installment_label' column to 'reconciled_payments' table", "error", err)
		} else {
			logger.L.Info("Added 'installment_label' column to 'reconciled_payments' table")
		}
	}
	if _, ok := columnExists["hash_id"]; !ok {
		_, err := DB.Exec("ALTER TABLE reconciled_payments ADD COLUMN hash_id TEXT")
		if err != nil {
			logger.L.Error("Error adding 'hash_id' column to 'reconciled_payments' table", "error", err)
		} else {
			logger.L.Info("Added 'hash_id' column to 'reconciled_payments' table")
		}
	}
}
