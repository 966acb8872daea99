package agentpay

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/agentpay-io/agentpay-go/errors"
)

func TestStatusFromCode(t *testing.T) {
	cases := map[string]struct {
		code uint8
		want TaskStatus
	}{
		"created":                 {code: 0, want: TaskStatusCreated},
		"submitted":               {code: 1, want: TaskStatusSubmitted},
		"resolved":                {code: 2, want: TaskStatusResolved},
		"cancelled":               {code: 3, want: TaskStatusCancelled},
		"future lifecycle state":  {code: 4, want: TaskStatusUnknown},
		"far out of range":        {code: 200, want: TaskStatusUnknown},
		"unknown code stays that": {code: 255, want: TaskStatusUnknown},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := StatusFromCode(tc.code); got != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestTaskStatusString(t *testing.T) {
	cases := map[string]struct {
		status TaskStatus
		want   string
	}{
		"created":    {status: TaskStatusCreated, want: "Created"},
		"submitted":  {status: TaskStatusSubmitted, want: "Submitted"},
		"resolved":   {status: TaskStatusResolved, want: "Resolved"},
		"cancelled":  {status: TaskStatusCancelled, want: "Cancelled"},
		"unknown":    {status: TaskStatusUnknown, want: "Unknown"},
		"unexpected": {status: TaskStatus(42), want: "Unknown"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.status.String(); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTaskStatusJSON(t *testing.T) {
	raw, err := json.Marshal(TaskStatusCreated)
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	if got, want := string(raw), `"Created"`; got != want {
		t.Fatalf("want %s, got %s", want, got)
	}

	cases := map[string]struct {
		raw     string
		want    TaskStatus
		wantErr *errors.Error
	}{
		"from name": {
			raw:  `"Submitted"`,
			want: TaskStatusSubmitted,
		},
		"from code": {
			raw:  `2`,
			want: TaskStatusResolved,
		},
		"from unrecognized code": {
			raw:  `4`,
			want: TaskStatusUnknown,
		},
		"from unknown name": {
			raw:     `"Exploded"`,
			wantErr: errors.ErrValidation,
		},
		"garbage": {
			raw:     `{}`,
			wantErr: errors.ErrValidation,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got TaskStatus
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestUnixTimeRoundTrip(t *testing.T) {
	now := time.Now()
	unix := AsUnixTime(now)
	if got, want := unix.Time().Unix(), now.Unix(); got != want {
		t.Fatalf("want %d, got %d", want, got)
	}
}

func TestUnixTimeFromBig(t *testing.T) {
	cases := map[string]struct {
		b    *big.Int
		want UnixTime
	}{
		"nil is zero":    {b: nil, want: 0},
		"zero":           {b: big.NewInt(0), want: 0},
		"some timestamp": {b: big.NewInt(1554370540), want: 1554370540},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := UnixTimeFromBig(tc.b); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
			if tc.want == 0 && !UnixTimeFromBig(tc.b).IsZero() {
				t.Fatal("want a zero time")
			}
		})
	}
}
