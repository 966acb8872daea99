package client

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	agentpay "github.com/agentpay-io/agentpay-go"
)

// taskCreatedID extracts the task id from the TaskCreated event of the
// receipt. The id is the first indexed argument, so it travels in the
// second log topic.
func (c *Client) taskCreatedID(receipt *types.Receipt) (*big.Int, bool) {
	ev := c.abi.Events[agentpay.EventTaskCreated]
	for _, log := range receipt.Logs {
		if log == nil || log.Address != c.contract {
			continue
		}
		if len(log.Topics) < 2 || log.Topics[0] != ev.ID {
			continue
		}
		return new(big.Int).SetBytes(log.Topics[1].Bytes()), true
	}
	return nil, false
}

// taskResolvedAmounts extracts the payout split from the TaskResolved event
// of the receipt. Both amounts are wei. The non indexed payload decodes as
// payeeAmount, refundAmount, score.
func (c *Client) taskResolvedAmounts(receipt *types.Receipt) (payeeWei, refundWei *big.Int, found bool) {
	ev := c.abi.Events[agentpay.EventTaskResolved]
	for _, log := range receipt.Logs {
		if log == nil || log.Address != c.contract {
			continue
		}
		if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
			continue
		}
		vals, err := c.abi.Unpack(agentpay.EventTaskResolved, log.Data)
		if err != nil || len(vals) != 3 {
			c.logger.Warn().Err(err).Msg("malformed TaskResolved event")
			continue
		}
		payee, okPayee := vals[0].(*big.Int)
		refund, okRefund := vals[1].(*big.Int)
		if !okPayee || !okRefund {
			continue
		}
		return payee, refund, true
	}
	return nil, nil, false
}
