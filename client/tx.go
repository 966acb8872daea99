package client

import (
	"context"
	stderrors "errors"
	"math/big"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/agentpay-io/agentpay-go/errors"
	"github.com/agentpay-io/agentpay-go/signer"
)

// transact packs a contract call, signs it, submits it and blocks until the
// transaction is mined. It returns the receipt of a successful execution. A
// mined but reverted transaction is reported as ErrTransaction, never as
// success.
func (c *Client) transact(ctx context.Context, sig *signer.Signer, method string, value *big.Int, gasLimit uint64, args ...interface{}) (*types.Receipt, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrValidation, "%s arguments: %s", method, err.Error())
	}

	// Gas price and nonce are fetched right before signing, never cached.
	// Several processes sharing one identity would otherwise collide on
	// stale nonces.
	gasPrice, err := c.conn.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "gas price: %s", err.Error())
	}
	nonce, err := c.conn.PendingNonceAt(ctx, sig.Address())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "nonce of %s: %s", sig.Address().Hex(), err.Error())
	}

	contract := c.contract
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &contract,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     input,
	})
	signed, err := sig.SignTx(tx, c.chainID)
	if err != nil {
		return nil, err
	}

	if err := c.conn.SendTransaction(ctx, signed); err != nil {
		// The node refused the transaction, propagate its reason.
		return nil, errors.Wrapf(errors.ErrTransaction, "%s: %s", method, err.Error())
	}

	c.logger.Debug().
		Str("method", method).
		Str("tx", signed.Hash().Hex()).
		Uint64("nonce", nonce).
		Msg("transaction submitted")

	receipt, err := c.waitMined(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, errors.Wrapf(errors.ErrTransaction, "%s reverted, tx %s", method, signed.Hash().Hex())
	}
	return receipt, nil
}

// waitMined polls for the transaction receipt until it is available, the
// configured receipt timeout passes, or ctx is cancelled. A node reporting
// ethereum.NotFound means the transaction is still pending, any other error
// aborts the wait.
func (c *Client) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if c.receiptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.receiptTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.receiptInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.conn.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !stderrors.Is(err, ethereum.NotFound) {
			return nil, errors.Wrapf(errors.ErrNetwork, "receipt %s: %s", txHash.Hex(), err.Error())
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(errors.ErrTimeout, "receipt %s: %s", txHash.Hex(), ctx.Err().Error())
		case <-ticker.C:
		}
	}
}
