package agentpaytest

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/agentpay-io/agentpay-go/client"
)

// Conn is an in-memory Ethereum node stand-in. The zero value behaves like
// a reachable empty chain. Tests prime the exported fields to script
// responses and read the call counters to assert on network traffic.
type Conn struct {
	chainIDCall   int
	ChainIDResult *big.Int
	ChainIDErr    error

	gasPriceCall   int
	GasPriceResult *big.Int
	GasPriceErr    error

	nonceCall   int
	NonceResult uint64
	NonceErr    error

	balanceCall    int
	BalanceResults map[common.Address]*big.Int
	BalanceErr     error

	sendCall int
	SentTxs  []*types.Transaction
	SendErr  error

	// ReceiptQueue is consumed front to back, one entry per
	// TransactionReceipt call. A nil entry reports ethereum.NotFound,
	// simulating a transaction that is still pending. An empty queue
	// keeps reporting ethereum.NotFound.
	receiptCall  int
	ReceiptQueue []*types.Receipt
	ReceiptErr   error

	// CallQueue is consumed front to back, one entry per CallContract.
	contractCall int
	CallQueue    [][]byte
	CallErr      error
}

var _ client.Conn = (*Conn)(nil)

func (c *Conn) ChainID(ctx context.Context) (*big.Int, error) {
	c.chainIDCall++
	if c.ChainIDErr != nil {
		return nil, c.ChainIDErr
	}
	if c.ChainIDResult == nil {
		return big.NewInt(1337), nil
	}
	return c.ChainIDResult, nil
}

func (c *Conn) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	c.gasPriceCall++
	if c.GasPriceErr != nil {
		return nil, c.GasPriceErr
	}
	if c.GasPriceResult == nil {
		return big.NewInt(1000000000), nil
	}
	return c.GasPriceResult, nil
}

func (c *Conn) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	c.nonceCall++
	if c.NonceErr != nil {
		return 0, c.NonceErr
	}
	return c.NonceResult, nil
}

func (c *Conn) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	c.balanceCall++
	if c.BalanceErr != nil {
		return nil, c.BalanceErr
	}
	if balance, ok := c.BalanceResults[account]; ok {
		return balance, nil
	}
	return big.NewInt(0), nil
}

func (c *Conn) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	c.sendCall++
	if c.SendErr != nil {
		return c.SendErr
	}
	c.SentTxs = append(c.SentTxs, tx)
	return nil
}

func (c *Conn) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	c.receiptCall++
	if c.ReceiptErr != nil {
		return nil, c.ReceiptErr
	}
	if len(c.ReceiptQueue) == 0 {
		return nil, ethereum.NotFound
	}
	receipt := c.ReceiptQueue[0]
	c.ReceiptQueue = c.ReceiptQueue[1:]
	if receipt == nil {
		return nil, ethereum.NotFound
	}
	if receipt.TxHash == (common.Hash{}) {
		receipt.TxHash = txHash
	}
	return receipt, nil
}

func (c *Conn) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	c.contractCall++
	if c.CallErr != nil {
		return nil, c.CallErr
	}
	if len(c.CallQueue) == 0 {
		return nil, fmt.Errorf("no call result primed")
	}
	out := c.CallQueue[0]
	c.CallQueue = c.CallQueue[1:]
	return out, nil
}

// LastSentTx returns the most recently submitted transaction, or nil.
func (c *Conn) LastSentTx() *types.Transaction {
	if len(c.SentTxs) == 0 {
		return nil
	}
	return c.SentTxs[len(c.SentTxs)-1]
}

func (c *Conn) ChainIDCallCount() int {
	return c.chainIDCall
}

func (c *Conn) GasPriceCallCount() int {
	return c.gasPriceCall
}

func (c *Conn) NonceCallCount() int {
	return c.nonceCall
}

func (c *Conn) BalanceCallCount() int {
	return c.balanceCall
}

func (c *Conn) SendCallCount() int {
	return c.sendCall
}

func (c *Conn) ReceiptCallCount() int {
	return c.receiptCall
}

func (c *Conn) ContractCallCount() int {
	return c.contractCall
}

// CallCount returns the total number of node calls made through this
// connection.
func (c *Conn) CallCount() int {
	return c.chainIDCall + c.gasPriceCall + c.nonceCall + c.balanceCall +
		c.sendCall + c.receiptCall + c.contractCall
}
