package client

import (
	"context"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/agentpay-io/agentpay-go/errors"
)

/***
These are some helper functions to make a connection
to an Ethereum node.

Right now we dial the standard JSON-RPC interface over
http, https, ws or ipc, whatever the remote URL selects.
Tests exercise the same code paths against an in-memory
Conn from the agentpaytest package.
***/

// Conn is the subset of the Ethereum JSON-RPC surface the escrow client
// relies on. *ethclient.Client implements it.
type Conn interface {
	// ChainID returns the identifier of the chain the node follows.
	ChainID(ctx context.Context) (*big.Int, error)

	// SuggestGasPrice returns a gas price suitable for timely inclusion.
	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	// PendingNonceAt returns the next nonce of the account, counting
	// transactions still in the mempool.
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)

	// BalanceAt returns the wei balance of the account. A nil block
	// number means the latest known state.
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)

	// SendTransaction submits a signed transaction to the node.
	SendTransaction(ctx context.Context, tx *types.Transaction) error

	// TransactionReceipt returns the receipt of a mined transaction. It
	// returns ethereum.NotFound while the transaction is pending.
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	// CallContract executes a read only contract call against the given
	// block, or the latest block when blockNumber is nil.
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

var _ Conn = (*ethclient.Client)(nil)

// NewHTTPConnection takes a URL and sends all requests to the remote node.
func NewHTTPConnection(remote string) (*ethclient.Client, error) {
	conn, err := ethclient.Dial(remote)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration, "dial %q: %s", remote, err.Error())
	}
	return conn, nil
}
