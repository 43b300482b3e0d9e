package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/models"
)

// handleTransactions handles /api/transactions (list and create).
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleTransactionList(w, r)
	case http.MethodPost:
		s.handleTransactionCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeTransactions dispatches /api/transactions/{id} and
// /api/transactions/{id}/confirm-sale.
func (s *Server) routeTransactions(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/confirm-sale") {
		s.handleConfirmSale(w, r)
		return
	}

	id := PathParam(r, "/api/transactions/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Transaction ID is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleTransactionUpdate(w, r, id)
	case http.MethodDelete:
		s.handleTransactionDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	txs, err := s.app.LedgerService.ListTransactions(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	WriteJSON(w, http.StatusOK, txs)
}

func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if !DecodeJSON(w, r, &tx) {
		return
	}
	if !s.app.Config.HasOwner(string(tx.Owner)) {
		WriteError(w, http.StatusBadRequest, "Unknown owner: "+string(tx.Owner))
		return
	}

	created, err := s.app.LedgerService.AddTransaction(r.Context(), tx)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) handleTransactionUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var tx models.Transaction
	if !DecodeJSON(w, r, &tx) {
		return
	}
	if !s.app.Config.HasOwner(string(tx.Owner)) {
		WriteError(w, http.StatusBadRequest, "Unknown owner: "+string(tx.Owner))
		return
	}

	updated, err := s.app.LedgerService.UpdateTransaction(r.Context(), id, tx)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.app.LedgerService.DeleteTransaction(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleConfirmSale handles POST /api/transactions/{id}/confirm-sale.
func (s *Server) handleConfirmSale(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	id := PathParam(r, "/api/transactions/", "/confirm-sale")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Transaction ID is required")
		return
	}

	proceeds, err := s.app.LedgerService.ConfirmSale(r.Context(), id)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, proceeds)
}

// writeStorageError maps read-path failures to status codes.
func (s *Server) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrStoreUnavailable), errors.Is(err, common.ErrSchemaNotInitialized):
		s.logger.Error().Err(err).Msg("Storage failure")
		WriteError(w, http.StatusServiceUnavailable, "Storage unavailable")
	default:
		s.logger.Error().Err(err).Msg("Unexpected failure")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// writeMutationError additionally maps validation and state-conflict
// failures, which arrive as plain errors from the service layer.
func (s *Server) writeMutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrStoreUnavailable), errors.Is(err, common.ErrSchemaNotInitialized):
		s.logger.Error().Err(err).Msg("Storage failure")
		WriteError(w, http.StatusServiceUnavailable, "Storage unavailable")
	default:
		WriteError(w, http.StatusBadRequest, err.Error())
	}
}
