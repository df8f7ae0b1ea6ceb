package types

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteMsgValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     ExecuteMsg
		wantErr bool
	}{
		{
			name: "single variant",
			msg:  ExecuteMsg{CancelAsk: &CancelAsk{ID: "ask-1"}},
		},
		{
			name:    "no variant",
			msg:     ExecuteMsg{},
			wantErr: true,
		},
		{
			name: "two variants",
			msg: ExecuteMsg{
				CancelAsk: &CancelAsk{ID: "ask-1"},
				CancelBid: &CancelBid{ID: "bid-1"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingField)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestExecuteMsgJSONDispatch(t *testing.T) {
	// The wire format is a single-key object named after the variant.
	var msg ExecuteMsg
	err := json.Unmarshal([]byte(`{"execute_match":{"ask_id":"a1","bid_id":"b1"}}`), &msg)
	require.NoError(t, err)
	require.NoError(t, msg.Validate())
	require.NotNil(t, msg.ExecuteMatch)
	assert.Equal(t, "a1", msg.ExecuteMatch.AskID)
	assert.Equal(t, "b1", msg.ExecuteMatch.BidID)
}

func TestInstantiateMsgValidate(t *testing.T) {
	fee := math.NewInt(100)
	zero := math.ZeroInt()
	negative := math.NewInt(-5)

	tests := []struct {
		name    string
		msg     InstantiateMsg
		wantErr error
	}{
		{
			name: "valid without fees",
			msg:  InstantiateMsg{BindName: "escrow.sc", ContractName: "Escrow"},
		},
		{
			name: "valid with fees",
			msg:  InstantiateMsg{BindName: "escrow.sc", ContractName: "Escrow", AskFee: &fee, BidFee: &fee},
		},
		{
			name:    "missing bind name",
			msg:     InstantiateMsg{ContractName: "Escrow"},
			wantErr: ErrMissingField,
		},
		{
			name:    "missing contract name",
			msg:     InstantiateMsg{BindName: "escrow.sc"},
			wantErr: ErrMissingField,
		},
		{
			name:    "zero ask fee",
			msg:     InstantiateMsg{BindName: "escrow.sc", ContractName: "Escrow", AskFee: &zero},
			wantErr: ErrInvalidFee,
		},
		{
			name:    "negative bid fee",
			msg:     InstantiateMsg{BindName: "escrow.sc", ContractName: "Escrow", BidFee: &negative},
			wantErr: ErrInvalidFee,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestQueryMsgValidate(t *testing.T) {
	require.NoError(t, QueryMsg{GetContractInfo: &GetContractInfo{}}.Validate())
	require.ErrorIs(t, QueryMsg{}.Validate(), ErrMissingField)
	require.ErrorIs(t, QueryMsg{
		GetAsk: &GetAsk{ID: "a"},
		GetBid: &GetBid{ID: "b"},
	}.Validate(), ErrMissingField)
}
