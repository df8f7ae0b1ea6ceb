package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"

	"github.com/provlabs/bilateral-escrow/types"
)

type ContractHandler struct {
	host contractHost
}

type contractHost interface {
	Execute(sender string, funds sdk.Coins, msg types.ExecuteMsg) (*types.Response, error)
	Query(msg types.QueryMsg) ([]byte, error)
}

func NewContractHandler(host contractHost) ContractHandler {
	return ContractHandler{host: host}
}

// ExecuteRequest is the POST /execute body: who is calling, what funds ride
// along, and exactly one execute message variant.
type ExecuteRequest struct {
	Sender string           `json:"sender"`
	Funds  sdk.Coins        `json:"funds,omitempty"`
	Msg    types.ExecuteMsg `json:"msg"`
}

func (h ContractHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Sender == "" {
		http.Error(w, "missing sender", http.StatusBadRequest)
		return
	}

	resp, err := h.host.Execute(req.Sender, req.Funds, req.Msg)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	writeJSON(w, resp)
}

func (h ContractHandler) GetAsk(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "missing ask id", http.StatusBadRequest)
		return
	}

	result, err := h.host.Query(types.QueryMsg{GetAsk: &types.GetAsk{ID: id}})
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	writeRaw(w, result)
}

func (h ContractHandler) GetBid(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "missing bid id", http.StatusBadRequest)
		return
	}

	result, err := h.host.Query(types.QueryMsg{GetBid: &types.GetBid{ID: id}})
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	writeRaw(w, result)
}

func (h ContractHandler) GetContractInfo(w http.ResponseWriter, r *http.Request) {
	result, err := h.host.Query(types.QueryMsg{GetContractInfo: &types.GetContractInfo{}})
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	writeRaw(w, result)
}

// errorStatus maps contract errors onto HTTP statuses so tooling can tell a
// rejected request from a broken host.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, types.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, types.ErrInvalidBase),
		errors.Is(err, types.ErrInvalidQuote),
		errors.Is(err, types.ErrFundsMismatch),
		errors.Is(err, types.ErrUnexpectedFunds),
		errors.Is(err, types.ErrInsufficientFunds),
		errors.Is(err, types.ErrNoFundsProvided),
		errors.Is(err, types.ErrMatchMismatch),
		errors.Is(err, types.ErrInvalidFee),
		errors.Is(err, types.ErrMissingField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
