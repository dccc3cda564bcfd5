// src/handlers/client_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/neurobalance/backend/src/logger"
	"github.com/username/neurobalance/backend/src/models"
	"github.com/username/neurobalance/backend/src/services"
	"github.com/username/neurobalance/backend/src/utils"
)

type ClientHandler struct {
	registry services.ClientRegistry
}

func NewClientHandler(registry services.ClientRegistry) *ClientHandler {
	return &ClientHandler{
		registry: registry,
	}
}

// HandleGetClients serves the registry snapshot the matcher works from. Client
// records themselves are managed by the clinic application, not here.
func (h *ClientHandler) HandleGetClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.registry.LoadClients()
	if err != nil {
		if errors.Is(err, services.ErrRegistryUnavailable) {
			logger.L.Error("Client registry unavailable", "error", err)
			utils.SendJSONError(w, "Client registry is unavailable", http.StatusServiceUnavailable)
			return
		}
		logger.L.Error("Error loading clients", "error", err)
		utils.SendJSONError(w, "Error retrieving clients", http.StatusInternalServerError)
		return
	}
	if clients == nil {
		clients = []models.ClientIdentity{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(clients); err != nil {
		logger.L.Error("Error encoding JSON response for clients", "error", err)
	}
}
