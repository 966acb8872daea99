package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agentpay-io/agentpay-go/client"
	"github.com/agentpay-io/agentpay-go/signer"
	"github.com/rs/zerolog"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// defaultKeyPath is where key commands look for the signing key unless told
// otherwise.
func defaultKeyPath() string {
	return os.Getenv("HOME") + "/.agentpay.priv.key"
}

// cmdLogger returns a logger writing to stderr when verbose is set and a
// silent one otherwise.
func cmdLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// escrowClient dials the node and binds the escrow contract. The returned
// client is read only.
func escrowClient(ctx context.Context, nodeAddr, contractAddr string, opts ...client.Option) (*client.Client, error) {
	if contractAddr == "" {
		return nil, fmt.Errorf("contract address required, use -contract or the PAYCLI_CONTRACT_ADDR environment variable")
	}
	conn, err := client.NewHTTPConnection(nodeAddr)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %q: %s", nodeAddr, err)
	}
	c, err := client.NewClient(ctx, conn, contractAddr, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot bind escrow contract: %s", err)
	}
	return c, nil
}

// signingClient is escrowClient with the identity loaded from the key file.
func signingClient(ctx context.Context, nodeAddr, contractAddr, keyPath string, opts ...client.Option) (*client.Client, error) {
	sig, err := signer.Load(keyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load the signing key from %q: %s", keyPath, err)
	}
	opts = append(opts, client.WithSigner(sig))
	return escrowClient(ctx, nodeAddr, contractAddr, opts...)
}
