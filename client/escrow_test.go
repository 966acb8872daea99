package client_test

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	agentpay "github.com/agentpay-io/agentpay-go"
	"github.com/agentpay-io/agentpay-go/agentpaytest"
	"github.com/agentpay-io/agentpay-go/agentpaytest/assert"
	"github.com/agentpay-io/agentpay-go/client"
	"github.com/agentpay-io/agentpay-go/errors"
)

func TestCreateTask(t *testing.T) {
	conn := &agentpaytest.Conn{
		GasPriceResult: big.NewInt(2000000000),
		NonceResult:    7,
		ReceiptQueue: []*types.Receipt{
			nil, // one pending poll before the receipt lands
			agentpaytest.TaskCreatedReceipt(contractAddr(), big.NewInt(42)),
		},
	}
	sig := agentpaytest.DevSigner(0)
	c := newTestClient(t, conn,
		client.WithSigner(sig),
		client.WithReceiptInterval(time.Millisecond),
	)

	res, err := c.CreateTask(context.Background(), testPayee, "translate the brief", 1.5)
	assert.Nil(t, err)
	assert.Equal(t, "42", res.TaskID.String())

	tx := conn.LastSentTx()
	if tx == nil {
		t.Fatal("no transaction submitted")
	}
	assert.Equal(t, res.TxHash, tx.Hash())
	assert.Equal(t, agentpay.CreateTaskGas, tx.Gas())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, "2000000000", tx.GasPrice().String())
	assert.Equal(t, "1500000000000000000", tx.Value().String())
	assert.Equal(t, contractAddr(), *tx.To())

	escrowABI, err := agentpay.ParseEscrowABI()
	assert.Nil(t, err)
	if !bytes.Equal(tx.Data()[:4], escrowABI.Methods["createTask"].ID) {
		t.Fatalf("unexpected method selector: %x", tx.Data()[:4])
	}

	// The signature must recover to the configured identity under the
	// chain id fetched at construction.
	from, err := types.Sender(types.NewEIP155Signer(c.ChainID()), tx)
	assert.Nil(t, err)
	assert.Equal(t, sig.Address(), from)

	assert.Equal(t, 2, conn.ReceiptCallCount())
}

func TestCreateTaskValidation(t *testing.T) {
	cases := map[string]struct {
		payee  string
		amount float64
	}{
		"malformed payee": {payee: "0x1234", amount: 1},
		"zero amount":     {payee: testPayee, amount: 0},
		"negative amount": {payee: testPayee, amount: -0.5},
		"not a number":    {payee: testPayee, amount: math.NaN()},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			conn := &agentpaytest.Conn{}
			c := newTestClient(t, conn, client.WithSigner(agentpaytest.DevSigner(0)))
			base := conn.CallCount()

			_, err := c.CreateTask(context.Background(), tc.payee, "demo", tc.amount)
			assert.IsErr(t, errors.ErrValidation, err)
			assert.Equal(t, base, conn.CallCount())
		})
	}
}

func TestCreateTaskWithoutEvent(t *testing.T) {
	conn := &agentpaytest.Conn{
		ReceiptQueue: []*types.Receipt{agentpaytest.SuccessReceipt()},
	}
	c := newTestClient(t, conn,
		client.WithSigner(agentpaytest.DevSigner(0)),
		client.WithReceiptInterval(time.Millisecond),
	)

	res, err := c.CreateTask(context.Background(), testPayee, "demo", 0.25)
	assert.Nil(t, err)
	if res.TaskID != nil {
		t.Fatalf("want nil task id, got %s", res.TaskID)
	}
	assert.Equal(t, conn.LastSentTx().Hash(), res.TxHash)
}

func TestTransactionReverted(t *testing.T) {
	conn := &agentpaytest.Conn{
		ReceiptQueue: []*types.Receipt{agentpaytest.RevertedReceipt()},
	}
	c := newTestClient(t, conn,
		client.WithSigner(agentpaytest.DevSigner(0)),
		client.WithReceiptInterval(time.Millisecond),
	)

	_, err := c.CreateTask(context.Background(), testPayee, "demo", 1)
	assert.IsErr(t, errors.ErrTransaction, err)
}

func TestSubmitDeliverable(t *testing.T) {
	conn := &agentpaytest.Conn{
		ReceiptQueue: []*types.Receipt{agentpaytest.SuccessReceipt()},
	}
	c := newTestClient(t, conn,
		client.WithSigner(agentpaytest.DevSigner(1)),
		client.WithReceiptInterval(time.Millisecond),
	)

	res, err := c.SubmitDeliverable(context.Background(), big.NewInt(42), "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG")
	assert.Nil(t, err)
	assert.Equal(t, conn.LastSentTx().Hash(), res.TxHash)
	assert.Equal(t, agentpay.SubmitDeliverableGas, conn.LastSentTx().Gas())
	// No ether rides along with a deliverable.
	assert.Equal(t, 0, conn.LastSentTx().Value().Sign())
}

func TestSubmitDeliverableNilTaskID(t *testing.T) {
	conn := &agentpaytest.Conn{}
	c := newTestClient(t, conn, client.WithSigner(agentpaytest.DevSigner(1)))
	base := conn.CallCount()

	_, err := c.SubmitDeliverable(context.Background(), nil, "QmHash")
	assert.IsErr(t, errors.ErrValidation, err)
	assert.Equal(t, base, conn.CallCount())
}

func TestScoreAndResolve(t *testing.T) {
	payeeWei, _ := new(big.Int).SetString("1350000000000000000", 10)
	refundWei, _ := new(big.Int).SetString("150000000000000000", 10)
	conn := &agentpaytest.Conn{
		ReceiptQueue: []*types.Receipt{
			agentpaytest.TaskResolvedReceipt(contractAddr(), big.NewInt(7), payeeWei, refundWei, 90),
		},
	}
	c := newTestClient(t, conn,
		client.WithSigner(agentpaytest.DevSigner(0)),
		client.WithReceiptInterval(time.Millisecond),
	)

	res, err := c.ScoreAndResolve(context.Background(), big.NewInt(7), 90)
	assert.Nil(t, err)
	assert.Equal(t, true, res.EventFound)
	assert.Equal(t, 1.35, res.PayeeAmount)
	assert.Equal(t, 0.15, res.RefundAmount)
	assert.Equal(t, agentpay.ScoreAndResolveGas, conn.LastSentTx().Gas())
}

func TestScoreAndResolveBounds(t *testing.T) {
	cases := map[string]struct {
		score   int64
		wantErr *errors.Error
	}{
		"below range": {score: -1, wantErr: errors.ErrValidation},
		"above range": {score: 101, wantErr: errors.ErrValidation},
		"lowest":      {score: 0},
		"highest":     {score: 100},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			conn := &agentpaytest.Conn{
				ReceiptQueue: []*types.Receipt{agentpaytest.SuccessReceipt()},
			}
			c := newTestClient(t, conn,
				client.WithSigner(agentpaytest.DevSigner(0)),
				client.WithReceiptInterval(time.Millisecond),
			)
			base := conn.CallCount()

			_, err := c.ScoreAndResolve(context.Background(), big.NewInt(7), tc.score)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				// Range checks fire before any node traffic.
				assert.Equal(t, base, conn.CallCount())
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestScoreAndResolveWithoutEvent(t *testing.T) {
	conn := &agentpaytest.Conn{
		ReceiptQueue: []*types.Receipt{agentpaytest.SuccessReceipt()},
	}
	c := newTestClient(t, conn,
		client.WithSigner(agentpaytest.DevSigner(0)),
		client.WithReceiptInterval(time.Millisecond),
	)

	res, err := c.ScoreAndResolve(context.Background(), big.NewInt(7), 55)
	assert.Nil(t, err)
	assert.Equal(t, false, res.EventFound)
	assert.Equal(t, 0.0, res.PayeeAmount)
	assert.Equal(t, 0.0, res.RefundAmount)
}

func TestCancelTask(t *testing.T) {
	conn := &agentpaytest.Conn{
		ReceiptQueue: []*types.Receipt{agentpaytest.SuccessReceipt()},
	}
	c := newTestClient(t, conn,
		client.WithSigner(agentpaytest.DevSigner(0)),
		client.WithReceiptInterval(time.Millisecond),
	)

	res, err := c.CancelTask(context.Background(), big.NewInt(3))
	assert.Nil(t, err)
	assert.Equal(t, conn.LastSentTx().Hash(), res.TxHash)
	assert.Equal(t, agentpay.CancelTaskGas, conn.LastSentTx().Gas())
}

func TestGetTask(t *testing.T) {
	fixture := agentpaytest.NewTask(9)
	fixture.Status = agentpay.TaskStatusSubmitted
	fixture.SubmittedAt = agentpay.UnixTime(1700000600)
	fixture.DeliverableHash = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

	conn := &agentpaytest.Conn{CallQueue: [][]byte{agentpaytest.PackTask(fixture)}}
	// Reads need no signer.
	c := newTestClient(t, conn)

	got, err := c.GetTask(context.Background(), big.NewInt(9))
	assert.Nil(t, err)
	assert.Equal(t, "9", got.ID.String())
	assert.Equal(t, fixture.Payer, got.Payer)
	assert.Equal(t, fixture.Payee, got.Payee)
	assert.Equal(t, 1.5, got.Amount)
	assert.Equal(t, "1500000000000000000", got.AmountWei.String())
	assert.Equal(t, fixture.Description, got.Description)
	assert.Equal(t, agentpay.TaskStatusSubmitted, got.Status)
	assert.Equal(t, fixture.CreatedAt, got.CreatedAt)
	assert.Equal(t, fixture.SubmittedAt, got.SubmittedAt)
	assert.Equal(t, fixture.DeliverableHash, got.DeliverableHash)
	assert.Equal(t, int64(0), got.Score)
	assert.Equal(t, false, got.Resolved)
	assert.Equal(t, 1, conn.ContractCallCount())
}

func TestGetTaskUnknownStatus(t *testing.T) {
	fixture := agentpaytest.NewTask(4)
	fixture.Status = agentpay.TaskStatus(4)

	conn := &agentpaytest.Conn{CallQueue: [][]byte{agentpaytest.PackTask(fixture)}}
	c := newTestClient(t, conn)

	got, err := c.GetTask(context.Background(), big.NewInt(4))
	assert.Nil(t, err)
	assert.Equal(t, agentpay.TaskStatusUnknown, got.Status)
	assert.Equal(t, "Unknown", got.Status.String())
}

func TestGetTaskErrors(t *testing.T) {
	t.Run("nil task id", func(t *testing.T) {
		conn := &agentpaytest.Conn{}
		c := newTestClient(t, conn)
		base := conn.CallCount()

		_, err := c.GetTask(context.Background(), nil)
		assert.IsErr(t, errors.ErrValidation, err)
		assert.Equal(t, base, conn.CallCount())
	})

	t.Run("node failure", func(t *testing.T) {
		conn := &agentpaytest.Conn{CallErr: fmt.Errorf("boom")}
		c := newTestClient(t, conn)

		_, err := c.GetTask(context.Background(), big.NewInt(1))
		assert.IsErr(t, errors.ErrNetwork, err)
	})
}

func TestGetBalance(t *testing.T) {
	holder := agentpaytest.DevSigner(2).Address()
	wei, _ := new(big.Int).SetString("2500000000000000000", 10)
	conn := &agentpaytest.Conn{
		BalanceResults: map[common.Address]*big.Int{holder: wei},
	}
	c := newTestClient(t, conn)

	eth, err := c.GetBalance(context.Background(), holder.Hex())
	assert.Nil(t, err)
	assert.Equal(t, 2.5, eth)

	exact, err := c.GetBalanceWei(context.Background(), holder.Hex())
	assert.Nil(t, err)
	assert.Equal(t, "2500000000000000000", exact.String())

	unknown, err := c.GetBalance(context.Background(), testPayee)
	assert.Nil(t, err)
	assert.Equal(t, 0.0, unknown)
}

func TestGetBalanceErrors(t *testing.T) {
	t.Run("bad address", func(t *testing.T) {
		conn := &agentpaytest.Conn{}
		c := newTestClient(t, conn)
		base := conn.CallCount()

		_, err := c.GetBalance(context.Background(), "nobody")
		assert.IsErr(t, errors.ErrValidation, err)
		assert.Equal(t, base, conn.CallCount())
	})

	t.Run("node failure", func(t *testing.T) {
		conn := &agentpaytest.Conn{BalanceErr: fmt.Errorf("boom")}
		c := newTestClient(t, conn)

		_, err := c.GetBalance(context.Background(), testPayee)
		assert.IsErr(t, errors.ErrNetwork, err)
	})
}
