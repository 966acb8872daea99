package client

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	agentpay "github.com/agentpay-io/agentpay-go"
	"github.com/agentpay-io/agentpay-go/errors"
	"github.com/agentpay-io/agentpay-go/signer"
)

const (
	// DefaultReceiptInterval is the pause between receipt polls while a
	// transaction is pending.
	DefaultReceiptInterval = 500 * time.Millisecond

	// DefaultReceiptTimeout bounds how long a state changing call blocks
	// waiting for its transaction to be mined.
	DefaultReceiptTimeout = 2 * time.Minute
)

// Option configures a Client during construction.
type Option func(*Client)

// WithSigner sets the identity used to authorize transactions. Without a
// signer the client can only read.
func WithSigner(s *signer.Signer) Option {
	return func(c *Client) { c.signer = s }
}

// WithLogger routes client diagnostics to the given logger. The default
// logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithReceiptInterval overrides how often a pending transaction receipt is
// polled for.
func WithReceiptInterval(interval time.Duration) Option {
	return func(c *Client) { c.receiptInterval = interval }
}

// WithReceiptTimeout bounds how long a state changing call may block
// waiting to be mined. Zero disables the bound, leaving cancellation to the
// caller's context.
func WithReceiptTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.receiptTimeout = timeout }
}

// Client talks to a single escrow contract on a single chain. All state
// changing methods block until the transaction is mined. Methods are safe
// for concurrent use, though concurrent writes from one identity can race
// on the account nonce.
type Client struct {
	conn     Conn
	contract common.Address
	abi      abi.ABI
	chainID  *big.Int
	logger   zerolog.Logger

	receiptInterval time.Duration
	receiptTimeout  time.Duration

	mut    sync.RWMutex
	signer *signer.Signer
}

// NewClient connects the escrow contract at contractAddr through conn. The
// chain id is fetched once during construction, which doubles as a
// reachability probe of the node.
func NewClient(ctx context.Context, conn Conn, contractAddr string, opts ...Option) (*Client, error) {
	contract, err := agentpay.NormalizeAddress(contractAddr)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration, "contract address %q", contractAddr)
	}
	escrowABI, err := agentpay.ParseEscrowABI()
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn:            conn,
		contract:        contract,
		abi:             escrowABI,
		logger:          zerolog.Nop(),
		receiptInterval: DefaultReceiptInterval,
		receiptTimeout:  DefaultReceiptTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	chainID, err := conn.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration, "chain id: %s", err.Error())
	}
	c.chainID = chainID

	c.logger.Debug().
		Str("contract", contract.Hex()).
		Str("chain_id", chainID.String()).
		Msg("escrow client connected")
	return c, nil
}

// SetSigner replaces the signing identity used to authorize transactions.
// The key is accepted as hex with or without the 0x prefix. Swapping the
// identity does not affect transactions already in flight. Callers that
// need several identities at once should run one client per identity.
func (c *Client) SetSigner(privKeyHex string) error {
	s, err := signer.FromHex(privKeyHex)
	if err != nil {
		return err
	}
	c.mut.Lock()
	c.signer = s
	c.mut.Unlock()
	c.logger.Debug().Str("signer", s.Address().Hex()).Msg("signer configured")
	return nil
}

// SignerAddress returns the address of the configured signing identity, or
// the zero address when the client is read only.
func (c *Client) SignerAddress() common.Address {
	c.mut.RLock()
	defer c.mut.RUnlock()
	if c.signer == nil {
		return common.Address{}
	}
	return c.signer.Address()
}

// ContractAddress returns the escrow contract this client is bound to.
func (c *Client) ContractAddress() common.Address {
	return c.contract
}

// ChainID returns the chain id fetched during construction.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// requireSigner returns the configured signer or ErrSignerRequired. Every
// state changing method calls this before touching the network.
func (c *Client) requireSigner() (*signer.Signer, error) {
	c.mut.RLock()
	defer c.mut.RUnlock()
	if c.signer == nil {
		return nil, errors.Wrap(errors.ErrSignerRequired, "configure with WithSigner or SetSigner")
	}
	return c.signer, nil
}
