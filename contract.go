package agentpay

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/agentpay-io/agentpay-go/errors"
)

// Gas limits for the escrow operations. Task creation stores the most state
// and gets the largest budget. Unused gas is refunded, a too small budget
// makes the contract revert.
const (
	CreateTaskGas        uint64 = 500000
	SubmitDeliverableGas uint64 = 200000
	ScoreAndResolveGas   uint64 = 300000
	CancelTaskGas        uint64 = 200000
)

// Names of the contract events decoded by this client.
const (
	EventTaskCreated  = "TaskCreated"
	EventTaskResolved = "TaskResolved"
)

// EscrowABI describes the interface of the deployed AgentEscrow contract.
// This is the binding compatibility surface: argument encoding, function
// selectors and event topics are all derived from it. It must match the
// deployed contract exactly.
const EscrowABI = `[
	{
		"type": "function",
		"name": "createTask",
		"stateMutability": "payable",
		"inputs": [
			{"name": "payee", "type": "address"},
			{"name": "description", "type": "string"}
		],
		"outputs": [{"name": "taskId", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "submitDeliverable",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "taskId", "type": "uint256"},
			{"name": "deliverableHash", "type": "string"}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "scoreAndResolve",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "taskId", "type": "uint256"},
			{"name": "score", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "cancelTask",
		"stateMutability": "nonpayable",
		"inputs": [{"name": "taskId", "type": "uint256"}],
		"outputs": []
	},
	{
		"type": "function",
		"name": "getTask",
		"stateMutability": "view",
		"inputs": [{"name": "taskId", "type": "uint256"}],
		"outputs": [
			{"name": "payer", "type": "address"},
			{"name": "payee", "type": "address"},
			{"name": "amount", "type": "uint256"},
			{"name": "description", "type": "string"},
			{"name": "status", "type": "uint8"},
			{"name": "createdAt", "type": "uint256"},
			{"name": "submittedAt", "type": "uint256"},
			{"name": "deliverableHash", "type": "string"},
			{"name": "score", "type": "uint256"},
			{"name": "resolved", "type": "bool"}
		]
	},
	{
		"type": "event",
		"name": "TaskCreated",
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "taskId", "type": "uint256"},
			{"indexed": true, "name": "payer", "type": "address"},
			{"indexed": true, "name": "payee", "type": "address"},
			{"indexed": false, "name": "amount", "type": "uint256"}
		]
	},
	{
		"type": "event",
		"name": "TaskSubmitted",
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "taskId", "type": "uint256"},
			{"indexed": false, "name": "deliverableHash", "type": "string"}
		]
	},
	{
		"type": "event",
		"name": "TaskResolved",
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "taskId", "type": "uint256"},
			{"indexed": false, "name": "payeeAmount", "type": "uint256"},
			{"indexed": false, "name": "refundAmount", "type": "uint256"},
			{"indexed": false, "name": "score", "type": "uint256"}
		]
	},
	{
		"type": "event",
		"name": "TaskCancelled",
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "taskId", "type": "uint256"}
		]
	}
]`

// ParseEscrowABI returns the decoded AgentEscrow interface description.
func ParseEscrowABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(EscrowABI))
	if err != nil {
		return abi.ABI{}, errors.Wrap(errors.ErrConfiguration, err.Error())
	}
	return parsed, nil
}
