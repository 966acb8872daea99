package client

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CreateTaskResult is returned once a task creation transaction is mined.
// TaskID is decoded from the TaskCreated event of the receipt. It is nil
// when the receipt carries no such event, the id is never guessed.
type CreateTaskResult struct {
	TaskID *big.Int
	TxHash common.Hash
}

// TxResult is returned once a state changing transaction is mined.
type TxResult struct {
	TxHash common.Hash
}

// ResolveResult reports the payout split of a resolved task.
// PayeeAmount and RefundAmount are denominated in ether. EventFound is
// false when the receipt carried no TaskResolved event, in which case both
// amounts are zero and the caller should read the task for the final state.
type ResolveResult struct {
	TxHash       common.Hash
	PayeeAmount  float64
	RefundAmount float64
	EventFound   bool
}
