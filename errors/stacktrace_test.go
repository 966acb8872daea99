package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStackTrace(t *testing.T) {
	cases := map[string]struct {
		err       error
		wantError string
	}{
		"New gives us a stacktrace": {
			err:       ErrValidation.New("score"),
			wantError: "score: invalid input",
		},
		"wrapping stderr gives us a stacktrace": {
			err:       Wrap(fmt.Errorf("foo"), "standard"),
			wantError: "standard: foo",
		},
		"wrapping pkg/errors keeps the original stacktrace": {
			err:       Wrap(errors.New("bar"), "pkg"),
			wantError: "pkg: bar",
		},
	}

	const thisTestSrc = "errors.TestStackTrace"

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantError, tc.err.Error())

			assert.NotNil(t, stackTrace(tc.err))

			fullStack := fmt.Sprintf("%+v", tc.err)
			if !strings.Contains(fullStack, thisTestSrc) {
				t.Logf("Stack trace below\n----%s\n----", fullStack)
				t.Error("full stack trace should contain this test function")
			}

			tiny := fmt.Sprintf("%v", tc.err)
			assert.Equal(t, tc.wantError, tiny)
			assert.False(t, strings.Contains(tiny, "\n"), "only one line is expected")
		})
	}
}

func TestWrapStacksOnlyOnce(t *testing.T) {
	inner := Wrap(ErrNetwork, "dial")
	outer := Wrapf(inner, "connecting to %q", "localhost:8545")

	full := fmt.Sprintf("%+v", outer)
	if got := strings.Count(full, "errors.TestWrapStacksOnlyOnce"); got != 1 {
		t.Logf("Stack trace below\n----%s\n----", full)
		t.Fatalf("want a single recorded stacktrace, got %d", got)
	}
}
