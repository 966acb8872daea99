package agentpaytest

import (
	"fmt"
	"math/big"

	agentpay "github.com/agentpay-io/agentpay-go"
)

// NewTask returns a populated task fixture. Callers override fields as
// needed before packing.
func NewTask(id int64) *agentpay.Task {
	return &agentpay.Task{
		ID:          big.NewInt(id),
		Payer:       DevSigner(0).Address(),
		Payee:       DevSigner(1).Address(),
		Amount:      1.5,
		AmountWei:   big.NewInt(1500000000000000000),
		Description: "fixture task",
		Status:      agentpay.TaskStatusCreated,
		CreatedAt:   agentpay.UnixTime(1700000000),
	}
}

// PackTask encodes the task the way the getTask contract call returns it:
// payer, payee, amount, description, status, createdAt, submittedAt,
// deliverableHash, score, resolved.
func PackTask(task *agentpay.Task) []byte {
	amountWei := task.AmountWei
	if amountWei == nil {
		amountWei = big.NewInt(0)
	}
	outputs := escrowABI.Methods["getTask"].Outputs
	data, err := outputs.Pack(
		task.Payer,
		task.Payee,
		amountWei,
		task.Description,
		uint8(task.Status),
		big.NewInt(int64(task.CreatedAt)),
		big.NewInt(int64(task.SubmittedAt)),
		task.DeliverableHash,
		big.NewInt(task.Score),
		task.Resolved,
	)
	if err != nil {
		panic(fmt.Sprintf("pack getTask result: %s", err))
	}
	return data
}
