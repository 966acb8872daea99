/*
Package errors implements the error types returned by the agentpay client.

The idea is to reuse the root errors declared in this package as much as
possible. Every error returned by the library wraps one of the registered
roots, which allows callers to classify failures with the Is method and act
accordingly (for example retry on ErrNetwork but never on ErrValidation).

Create errors at the point of failure using ErrXyz.New("...") or
errors.Wrap(err, "...") so that a stacktrace is attached. If you wrap multiple
times, only the first wrap records the stacktrace. (And don't create errors as
a global `var errFoo = errors.ErrValidation.New("foo")` or you will get a
useless stacktrace.)

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
for the error
	%s is just the error message
	%+v is the full stack trace
*/
package errors
