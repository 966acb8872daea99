package client

import (
	"context"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	agentpay "github.com/agentpay-io/agentpay-go"
	"github.com/agentpay-io/agentpay-go/errors"
	"github.com/agentpay-io/agentpay-go/units"
)

// CreateTask escrows amountEth with the contract and opens a task for the
// payee. It blocks until the transaction is mined. The returned TaskID is
// decoded from the TaskCreated event, a receipt without that event yields a
// nil TaskID and a warning on the client logger.
func (c *Client) CreateTask(ctx context.Context, payee string, description string, amountEth float64) (*CreateTaskResult, error) {
	sig, err := c.requireSigner()
	if err != nil {
		return nil, err
	}
	payeeAddr, err := agentpay.NormalizeAddress(payee)
	if err != nil {
		return nil, err
	}
	if amountEth <= 0 {
		return nil, errors.Wrapf(errors.ErrValidation, "amount must be positive, got %v", amountEth)
	}
	amountWei, err := units.ToWei(amountEth)
	if err != nil {
		return nil, err
	}

	receipt, err := c.transact(ctx, sig, "createTask", amountWei, agentpay.CreateTaskGas, payeeAddr, description)
	if err != nil {
		return nil, err
	}

	res := &CreateTaskResult{TxHash: receipt.TxHash}
	if taskID, ok := c.taskCreatedID(receipt); ok {
		res.TaskID = taskID
		c.logger.Info().
			Str("task_id", taskID.String()).
			Str("payee", payeeAddr.Hex()).
			Float64("amount_eth", amountEth).
			Msg("task created")
	} else {
		c.logger.Warn().
			Str("tx", receipt.TxHash.Hex()).
			Msg("no TaskCreated event in receipt")
	}
	return res, nil
}

// SubmitDeliverable records the hash of the payee's work on the task. It
// blocks until the transaction is mined.
func (c *Client) SubmitDeliverable(ctx context.Context, taskID *big.Int, deliverableHash string) (*TxResult, error) {
	sig, err := c.requireSigner()
	if err != nil {
		return nil, err
	}
	if taskID == nil {
		return nil, errors.Wrap(errors.ErrValidation, "task id required")
	}

	receipt, err := c.transact(ctx, sig, "submitDeliverable", nil, agentpay.SubmitDeliverableGas, taskID, deliverableHash)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("task_id", taskID.String()).Msg("deliverable submitted")
	return &TxResult{TxHash: receipt.TxHash}, nil
}

// ScoreAndResolve scores the submitted work between 0 and 100 and settles
// the escrow. The contract splits the escrowed amount between payee and
// payer according to the score. The split is decoded from the TaskResolved
// event, a receipt without that event yields zero amounts and EventFound
// false rather than an error.
func (c *Client) ScoreAndResolve(ctx context.Context, taskID *big.Int, score int64) (*ResolveResult, error) {
	sig, err := c.requireSigner()
	if err != nil {
		return nil, err
	}
	if taskID == nil {
		return nil, errors.Wrap(errors.ErrValidation, "task id required")
	}
	if score < 0 || score > 100 {
		return nil, errors.Wrapf(errors.ErrValidation, "score must be between 0 and 100, got %d", score)
	}

	receipt, err := c.transact(ctx, sig, "scoreAndResolve", nil, agentpay.ScoreAndResolveGas, taskID, big.NewInt(score))
	if err != nil {
		return nil, err
	}

	res := &ResolveResult{TxHash: receipt.TxHash}
	if payeeWei, refundWei, ok := c.taskResolvedAmounts(receipt); ok {
		res.PayeeAmount = units.FromWei(payeeWei)
		res.RefundAmount = units.FromWei(refundWei)
		res.EventFound = true
		c.logger.Info().
			Str("task_id", taskID.String()).
			Int64("score", score).
			Float64("payee_eth", res.PayeeAmount).
			Float64("refund_eth", res.RefundAmount).
			Msg("task resolved")
	} else {
		c.logger.Warn().
			Str("tx", receipt.TxHash.Hex()).
			Str("task_id", taskID.String()).
			Msg("no TaskResolved event in receipt")
	}
	return res, nil
}

// CancelTask returns the escrowed amount to the payer. Only tasks that were
// never submitted can be cancelled, the contract reverts otherwise. It
// blocks until the transaction is mined.
func (c *Client) CancelTask(ctx context.Context, taskID *big.Int) (*TxResult, error) {
	sig, err := c.requireSigner()
	if err != nil {
		return nil, err
	}
	if taskID == nil {
		return nil, errors.Wrap(errors.ErrValidation, "task id required")
	}

	receipt, err := c.transact(ctx, sig, "cancelTask", nil, agentpay.CancelTaskGas, taskID)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("task_id", taskID.String()).Msg("task cancelled")
	return &TxResult{TxHash: receipt.TxHash}, nil
}

// GetTask reads the current state of a task. No signer is required.
func (c *Client) GetTask(ctx context.Context, taskID *big.Int) (*agentpay.Task, error) {
	if taskID == nil {
		return nil, errors.Wrap(errors.ErrValidation, "task id required")
	}
	input, err := c.abi.Pack("getTask", taskID)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrValidation, "getTask arguments: %s", err.Error())
	}

	contract := c.contract
	out, err := c.conn.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: input}, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "getTask %s: %s", taskID, err.Error())
	}
	vals, err := c.abi.Unpack("getTask", out)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "decode getTask response: %s", err.Error())
	}
	return taskFromTuple(taskID, vals)
}

// GetBalanceWei returns the exact wei balance of the address.
func (c *Client) GetBalanceWei(ctx context.Context, address string) (*big.Int, error) {
	addr, err := agentpay.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	balance, err := c.conn.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "balance of %s: %s", addr.Hex(), err.Error())
	}
	return balance, nil
}

// GetBalance returns the ether balance of the address as a float64. The
// conversion is lossy above 2^53 wei, use GetBalanceWei for exact
// accounting.
func (c *Client) GetBalance(ctx context.Context, address string) (float64, error) {
	wei, err := c.GetBalanceWei(ctx, address)
	if err != nil {
		return 0, err
	}
	return units.FromWei(wei), nil
}

// taskFromTuple maps the ten getTask return values onto a Task. The order
// is fixed by the contract: payer, payee, amount, description, status,
// createdAt, submittedAt, deliverableHash, score, resolved.
func taskFromTuple(taskID *big.Int, vals []interface{}) (*agentpay.Task, error) {
	if len(vals) != 10 {
		return nil, errors.Wrapf(errors.ErrNetwork, "getTask returned %d values, want 10", len(vals))
	}
	payer, ok0 := vals[0].(common.Address)
	payee, ok1 := vals[1].(common.Address)
	amountWei, ok2 := vals[2].(*big.Int)
	description, ok3 := vals[3].(string)
	statusCode, ok4 := vals[4].(uint8)
	createdAt, ok5 := vals[5].(*big.Int)
	submittedAt, ok6 := vals[6].(*big.Int)
	deliverableHash, ok7 := vals[7].(string)
	score, ok8 := vals[8].(*big.Int)
	resolved, ok9 := vals[9].(bool)
	if !(ok0 && ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8 && ok9) {
		return nil, errors.Wrap(errors.ErrNetwork, "getTask returned unexpected types")
	}

	return &agentpay.Task{
		ID:              new(big.Int).Set(taskID),
		Payer:           payer,
		Payee:           payee,
		Amount:          units.FromWei(amountWei),
		AmountWei:       amountWei,
		Description:     description,
		Status:          agentpay.StatusFromCode(statusCode),
		CreatedAt:       agentpay.UnixTimeFromBig(createdAt),
		SubmittedAt:     agentpay.UnixTimeFromBig(submittedAt),
		DeliverableHash: deliverableHash,
		Score:           score.Int64(),
		Resolved:        resolved,
	}, nil
}
