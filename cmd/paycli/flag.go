package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	agentpay "github.com/agentpay-io/agentpay-go"
	"github.com/agentpay-io/agentpay-go/units"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *flagAddress {
	var a flagAddress
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

type flagAddress struct {
	raw string
	set bool
}

func (a *flagAddress) String() string {
	if a == nil || !a.set {
		return ""
	}
	return a.raw
}

func (a *flagAddress) Set(raw string) error {
	addr, err := agentpay.NormalizeAddress(raw)
	if err != nil {
		return err
	}
	a.raw = addr.Hex()
	a.set = true
	return nil
}

// flAmount returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAmount(fl *flag.FlagSet, name, defaultVal, usage string) *units.Amount {
	var a units.Amount
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q amount flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flTaskID returns a value that is set only when the command line argument
// was provided. Task ids are decimal encoded uint256 values, BigInt returns
// nil for an unset flag.
func flTaskID(fl *flag.FlagSet, name, usage string) *flagTaskID {
	var id flagTaskID
	fl.Var(&id, name, usage)
	return &id
}

type flagTaskID struct {
	val big.Int
	set bool
}

func (id *flagTaskID) String() string {
	if id == nil || !id.set {
		return ""
	}
	return id.val.String()
}

func (id *flagTaskID) Set(raw string) error {
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		return fmt.Errorf("invalid task id %q", raw)
	}
	id.val.Set(v)
	id.set = true
	return nil
}

func (id *flagTaskID) BigInt() *big.Int {
	if !id.set {
		return nil
	}
	return &id.val
}
