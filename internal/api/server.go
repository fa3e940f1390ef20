package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/mintara/auction-house/internal/engine"
	"github.com/mintara/auction-house/internal/repository"
	"github.com/mintara/auction-house/internal/store"
	"go.uber.org/zap"
)

type Server struct {
	engine   engine.Engine
	store    *store.Store
	accounts repository.AccountRepository
}

func NewServer(engine engine.Engine, store *store.Store, accounts repository.AccountRepository) Server {
	return Server{engine, store, accounts}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/marketplaces", s.handleCreateMarketplace).Methods("POST")
	r.HandleFunc("/listings", s.handleList).Methods("POST")
	r.HandleFunc("/bids", s.handleBid).Methods("POST")
	r.HandleFunc("/sales", s.handleExecuteSale).Methods("POST")
	r.HandleFunc("/cancellations", s.handleCancel).Methods("POST")
	r.HandleFunc("/escrows/{marketplace}/{bidder}", s.handleGetEscrow).Methods("GET")
	r.HandleFunc("/accounts/{address}", s.handleGetAccount).Methods("GET")
	r.HandleFunc("/accounts/{address}/credits", s.handleCreditAccount).Methods("POST")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "Auction House")
}

func (s Server) handleCreateMarketplace(w http.ResponseWriter, r *http.Request) {
	var params engine.CreateMarketplaceParams
	if !decode(w, r, &params) {
		return
	}

	config, err := s.engine.CreateMarketplace(params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, config)
}

func (s Server) handleList(w http.ResponseWriter, r *http.Request) {
	var params engine.ListParams
	if !decode(w, r, &params) {
		return
	}

	tradeState, err := s.engine.List(params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, tradeState)
}

func (s Server) handleBid(w http.ResponseWriter, r *http.Request) {
	var params engine.BidParams
	if !decode(w, r, &params) {
		return
	}

	tradeState, err := s.engine.Bid(params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, tradeState)
}

func (s Server) handleExecuteSale(w http.ResponseWriter, r *http.Request) {
	var params engine.ExecuteSaleParams
	if !decode(w, r, &params) {
		return
	}

	sale, err := s.engine.ExecuteSale(params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, sale)
}

func (s Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	var params engine.CancelParams
	if !decode(w, r, &params) {
		return
	}

	if err := s.engine.Cancel(params); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleGetEscrow(w http.ResponseWriter, r *http.Request) {
	marketplace := mux.Vars(r)["marketplace"]
	bidder := mux.Vars(r)["bidder"]

	escrow, balance, err := s.engine.EscrowBalance(marketplace, bidder)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{
		"escrow":  escrow,
		"balance": balance,
	})
}

func (s Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	account, err := s.accounts.Get(s.store.DB(), address)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, account)
}

func (s Server) handleCreditAccount(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	var body struct {
		Amount uint64 `json:"amount"`
	}
	if !decode(w, r, &body) {
		return
	}

	err := s.store.WithinTx(func(tx *sqlx.Tx) error {
		return s.accounts.Credit(tx, address, body.Amount)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := s.accounts.Get(s.store.DB(), address)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, account)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	return true
}

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().With(zap.Error(err)).Error("Api: Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		zap.L().With(zap.Error(err)).Error("Api: Request failed")
		http.Error(w, "Internal server error", status)
		return
	}

	writeJson(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrMarketplaceNotFound),
		errors.Is(err, repository.ErrEscrowNotFound),
		errors.Is(err, engine.ErrInvalidTradeState):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrMarketplaceExists):
		return http.StatusConflict
	case errors.Is(err, engine.ErrSignOffRequired):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrInvalidSellerFeeBasisPoints),
		errors.Is(err, engine.ErrInvalidOrder),
		errors.Is(err, engine.ErrInvalidRoyaltyShares):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNotEnoughFunds),
		errors.Is(err, engine.ErrMetadataHashMismatch),
		errors.Is(err, engine.ErrNumericOverflow):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
