package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provlabs/bilateral-escrow/types"
)

type stubHost struct {
	executeResp *types.Response
	executeErr  error
	queryResult []byte
	queryErr    error

	gotSender string
	gotFunds  sdk.Coins
	gotMsg    types.ExecuteMsg
	gotQuery  types.QueryMsg
}

func (s *stubHost) Execute(sender string, funds sdk.Coins, msg types.ExecuteMsg) (*types.Response, error) {
	s.gotSender = sender
	s.gotFunds = funds
	s.gotMsg = msg
	if s.executeErr != nil {
		return nil, s.executeErr
	}
	return s.executeResp, nil
}

func (s *stubHost) Query(msg types.QueryMsg) ([]byte, error) {
	s.gotQuery = msg
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.queryResult, nil
}

func TestExecuteHandler(t *testing.T) {
	stub := &stubHost{executeResp: types.NewResponse().AddAttribute("action", "create_ask")}
	h := NewContractHandler(stub)

	body := `{
		"sender": "asker",
		"funds": [{"denom":"gme","amount":"1"}],
		"msg": {"create_ask":{"id":"a1","base":[{"denom":"gme","amount":"1"}],"quote":[{"denom":"usd","amount":"8"}]}}
	}`
	req := httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Execute(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asker", stub.gotSender)
	assert.True(t, types.CoinsEqual(stub.gotFunds, sdk.NewCoins(sdk.NewInt64Coin("gme", 1))))
	require.NotNil(t, stub.gotMsg.CreateAsk)
	assert.Equal(t, "a1", stub.gotMsg.CreateAsk.ID)
	assert.Contains(t, rec.Body.String(), "create_ask")
}

func TestExecuteHandlerRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			name:     "invalid json",
			body:     "{not json",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing sender",
			body:     `{"msg":{"cancel_ask":{"id":"a1"}}}`,
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewContractHandler(&stubHost{})
			req := httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Execute(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGetAskRoutesID(t *testing.T) {
	stub := &stubHost{queryResult: []byte(`{"id":"a1"}`)}
	h := NewContractHandler(stub)

	router := mux.NewRouter()
	router.HandleFunc("/asks/{id}", h.GetAsk).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/asks/a1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.gotQuery.GetAsk)
	assert.Equal(t, "a1", stub.gotQuery.GetAsk.ID)
	assert.JSONEq(t, `{"id":"a1"}`, rec.Body.String())
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errorsmod.Wrap(types.ErrNotFound, "ask"), http.StatusNotFound},
		{"unauthorized", types.ErrUnauthorized, http.StatusForbidden},
		{"duplicate id", types.ErrDuplicateID, http.StatusConflict},
		{"funds mismatch", types.ErrFundsMismatch, http.StatusBadRequest},
		{"match mismatch", types.ErrMatchMismatch, http.StatusBadRequest},
		{"unknown", errors.New("disk is on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}

func TestQueryHandlersSurfaceErrors(t *testing.T) {
	stub := &stubHost{queryErr: errorsmod.Wrap(types.ErrNotFound, "bid order")}
	h := NewContractHandler(stub)

	router := mux.NewRouter()
	router.HandleFunc("/bids/{id}", h.GetBid).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/bids/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
