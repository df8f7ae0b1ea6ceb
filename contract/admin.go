package contract

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/provlabs/bilateral-escrow/store"
	"github.com/provlabs/bilateral-escrow/types"
)

// updateFees overwrites the configured creation fees. Omitting a fee clears
// it; zero or negative values are rejected because "no fee" is expressed by
// omission, never by zero.
func (c *Contract) updateFees(kv store.KV, info MsgInfo, msg types.UpdateFees) (*types.Response, error) {
	orders := store.NewOrderStore(kv)
	contractInfo, err := orders.GetContractInfo()
	if err != nil {
		return nil, err
	}
	if info.Sender != contractInfo.Admin {
		return nil, errorsmod.Wrap(types.ErrUnauthorized, "only the admin may update fees")
	}
	if !info.Funds.IsZero() {
		return nil, errorsmod.Wrap(types.ErrUnexpectedFunds, "cannot attach funds when updating fees")
	}
	if err := validateFeeUpdate("ask", msg.AskFee); err != nil {
		return nil, err
	}
	if err := validateFeeUpdate("bid", msg.BidFee); err != nil {
		return nil, err
	}

	contractInfo.AskFee = msg.AskFee
	contractInfo.BidFee = msg.BidFee
	if err := orders.SetContractInfo(contractInfo); err != nil {
		return nil, err
	}

	c.logger.Info("fees updated",
		zap.String("ask_fee", feeDisplay(msg.AskFee)),
		zap.String("bid_fee", feeDisplay(msg.BidFee)),
	)

	return types.NewResponse().
		AddAttribute("action", "update_fees").
		AddAttribute("new_ask_fee", feeDisplay(msg.AskFee)).
		AddAttribute("new_bid_fee", feeDisplay(msg.BidFee)), nil
}

func validateFeeUpdate(feeType string, fee *math.Int) error {
	if fee != nil && !fee.IsPositive() {
		return errorsmod.Wrapf(types.ErrInvalidFee, "%s fee must be positive, got %s", feeType, fee)
	}
	return nil
}

func feeDisplay(fee *math.Int) string {
	if fee == nil {
		return "cleared"
	}
	return fee.String() + types.FeeDenom
}
