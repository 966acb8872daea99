package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/agentpay-io/agentpay-go/signer"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key and print its address.

When successful a new file containing the hex encoded private key is created.
This command fails if the private key file already exists.

When a hex encoded seed is provided the key is derived from it instead of
being random, so the same seed and derivation path always produce the same
key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("PAYCLI_PRIV_KEY", defaultKeyPath()),
			"Path to the private key file. You can use PAYCLI_PRIV_KEY environment variable to set it.")
		seedFl = fl.String("seed", "",
			"Optional hex encoded seed (16 to 64 bytes) to derive the key from.")
		derivationFl = fl.String("derivation", signer.DefaultDerivationPath,
			"Derivation path used together with -seed.")
	)
	fl.Parse(args)

	var sig *signer.Signer
	if *seedFl != "" {
		seed, err := hex.DecodeString(*seedFl)
		if err != nil {
			return fmt.Errorf("cannot decode seed: %s", err)
		}
		sig, err = signer.DeriveFromSeed(seed, *derivationFl)
		if err != nil {
			return fmt.Errorf("cannot derive key: %s", err)
		}
	} else {
		sig = signer.Generate()
	}

	if err := signer.Save(sig, *keyPathFl, false); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	fmt.Fprintln(output, sig.Address().Hex())
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("PAYCLI_PRIV_KEY", defaultKeyPath()),
			"Path to the private key file. You can use PAYCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	sig, err := signer.Load(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load the signing key from %q: %s", *keyPathFl, err)
	}
	_, err = fmt.Fprintln(output, sig.Address().Hex())
	return err
}
