package services

import (
	"database/sql"
	"fmt"

	"github.com/username/neurobalance/backend/src/models"
)

type sqliteClientRegistry struct {
	db *sql.DB
}

// NewClientRegistry returns the registry backed by the clients table.
func NewClientRegistry(db *sql.DB) ClientRegistry {
	return &sqliteClientRegistry{db: db}
}

// LoadClients returns every client, active or not: payments may reference any
// historical client. Row order (insertion order) is also the matcher's
// tie-break order.
func (r *sqliteClientRegistry) LoadClients() ([]models.ClientIdentity, error) {
	rows, err := r.db.Query(`SELECT id, name, COALESCE(nif, ''), COALESCE(status, '') FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
	}
	defer rows.Close()

	var clients []models.ClientIdentity
	for rows.Next() {
		var c models.ClientIdentity
		if err := rows.Scan(&c.ID, &c.Name, &c.FiscalID, &c.Status); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
	}
	return clients, nil
}
