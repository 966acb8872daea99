package agentpaytest

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	agentpay "github.com/agentpay-io/agentpay-go"
)

var escrowABI = mustEscrowABI()

func mustEscrowABI() abi.ABI {
	parsed, err := agentpay.ParseEscrowABI()
	if err != nil {
		panic(fmt.Sprintf("parse escrow abi: %s", err))
	}
	return parsed
}

// SuccessReceipt returns a minimal receipt of a successfully mined
// transaction. The Conn mock fills in the transaction hash on delivery.
func SuccessReceipt() *types.Receipt {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}
}

// RevertedReceipt returns the receipt of a mined but reverted transaction.
func RevertedReceipt() *types.Receipt {
	return &types.Receipt{Status: types.ReceiptStatusFailed}
}

// TaskCreatedReceipt returns a successful receipt whose logs carry a
// TaskCreated event emitted by the contract for the given task id. Payer,
// payee and amount are zero, the client only decodes the id.
func TaskCreatedReceipt(contract common.Address, taskID *big.Int) *types.Receipt {
	ev := escrowABI.Events[agentpay.EventTaskCreated]
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(0))
	if err != nil {
		panic(fmt.Sprintf("pack TaskCreated data: %s", err))
	}
	receipt := SuccessReceipt()
	receipt.Logs = []*types.Log{{
		Address: contract,
		Topics: []common.Hash{
			ev.ID,
			common.BigToHash(taskID),
			common.Hash{},
			common.Hash{},
		},
		Data: data,
	}}
	return receipt
}

// TaskResolvedReceipt returns a successful receipt whose logs carry a
// TaskResolved event with the given payout split, both amounts in wei.
func TaskResolvedReceipt(contract common.Address, taskID, payeeWei, refundWei *big.Int, score int64) *types.Receipt {
	ev := escrowABI.Events[agentpay.EventTaskResolved]
	data, err := ev.Inputs.NonIndexed().Pack(payeeWei, refundWei, big.NewInt(score))
	if err != nil {
		panic(fmt.Sprintf("pack TaskResolved data: %s", err))
	}
	receipt := SuccessReceipt()
	receipt.Logs = []*types.Log{{
		Address: contract,
		Topics: []common.Hash{
			ev.ID,
			common.BigToHash(taskID),
		},
		Data: data,
	}}
	return receipt
}
