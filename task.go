package agentpay

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/agentpay-io/agentpay-go/errors"
)

// TaskStatus is the lifecycle state of a task as reported by the contract.
type TaskStatus uint8

const (
	TaskStatusCreated TaskStatus = iota
	TaskStatusSubmitted
	TaskStatusResolved
	TaskStatusCancelled

	// TaskStatusUnknown is assigned to any status code this client version
	// does not know. Future contract versions may add new states and a
	// read must not fail because of that.
	TaskStatusUnknown TaskStatus = 255
)

// StatusFromCode maps a raw on-chain status code to a TaskStatus. Codes
// outside of the known lifecycle map to TaskStatusUnknown.
func StatusFromCode(code uint8) TaskStatus {
	switch s := TaskStatus(code); s {
	case TaskStatusCreated, TaskStatusSubmitted, TaskStatusResolved, TaskStatusCancelled:
		return s
	default:
		return TaskStatusUnknown
	}
}

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusCreated:
		return "Created"
	case TaskStatusSubmitted:
		return "Submitted"
	case TaskStatusResolved:
		return "Resolved"
	case TaskStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// MarshalJSON renders the status in its human readable form.
func (s TaskStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON supports unmarshaling both from the human readable name and
// from a raw status code number.
func (s *TaskStatus) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		switch name {
		case "Created":
			*s = TaskStatusCreated
		case "Submitted":
			*s = TaskStatusSubmitted
		case "Resolved":
			*s = TaskStatusResolved
		case "Cancelled":
			*s = TaskStatusCancelled
		case "Unknown":
			*s = TaskStatusUnknown
		default:
			return errors.ErrValidation.Newf("unknown status %q", name)
		}
		return nil
	}

	var code uint8
	if err := json.Unmarshal(raw, &code); err != nil {
		return errors.Wrap(errors.ErrValidation, "invalid status format")
	}
	*s = StatusFromCode(code)
	return nil
}

// UnixTime represents a point in time as POSIX time. The contract reports
// timestamps as whole seconds, so seconds precision is enough.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// IsZero returns true if this time was never set.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// String returns the usual string representation of this time as the
// time.Time structure would.
func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnixTimeFromBig converts an on-chain timestamp into a UnixTime. Timestamps
// that do not fit int64 are beyond any realistic clock and are truncated.
func UnixTimeFromBig(b *big.Int) UnixTime {
	if b == nil {
		return 0
	}
	return UnixTime(b.Int64())
}

// Task is a read-through projection of the on-chain task state. The contract
// is the single source of truth, a Task value is a snapshot taken at read
// time and is never written back.
type Task struct {
	ID              *big.Int       `json:"taskId"`
	Payer           common.Address `json:"payer"`
	Payee           common.Address `json:"payee"`
	Amount          float64        `json:"amount"`
	AmountWei       *big.Int       `json:"amountWei"`
	Description     string         `json:"description"`
	Status          TaskStatus     `json:"status"`
	CreatedAt       UnixTime       `json:"createdAt"`
	SubmittedAt     UnixTime       `json:"submittedAt"`
	DeliverableHash string         `json:"deliverableHash"`
	Score           int64          `json:"score"`
	Resolved        bool           `json:"resolved"`
}
