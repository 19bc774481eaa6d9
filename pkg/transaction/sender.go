// Package transaction turns assembled instructions into confirmed
// signatures. It owns blockhash fetching, signing, retrying and compute
// budget estimation so the operation packages stay pure.
package transaction

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
)

// DefaultComputeMultiplier pads simulated compute units so marginal
// runtime variance does not starve the real execution.
const DefaultComputeMultiplier = 1.20

const (
	retryInitialInterval = 250 * time.Millisecond
	retryMaxAttempts     = 3
)

// Chain is the RPC surface the sender needs. *rpc.Client satisfies it.
type Chain interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	SimulateTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error)
}

// Sender submits transactions against one chain endpoint.
type Sender struct {
	chain      Chain
	commitment rpc.CommitmentType
	multiplier float64
	feePayer   *solana.PrivateKey
	logger     zerolog.Logger
}

// Option tweaks a Sender.
type Option func(*Sender)

// WithCommitment sets the commitment used for blockhashes and
// simulation.
func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(s *Sender) { s.commitment = commitment }
}

// WithComputeMultiplier overrides the padding applied to simulated
// compute units.
func WithComputeMultiplier(multiplier float64) Option {
	return func(s *Sender) {
		if multiplier >= 1 {
			s.multiplier = multiplier
		}
	}
}

// WithFeePayer designates a separate key to pay transaction fees. The
// transaction is paid for and co-signed by it; the operation authority
// still signs.
func WithFeePayer(payer solana.PrivateKey) Option {
	return func(s *Sender) { s.feePayer = &payer }
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sender) { s.logger = logger }
}

// NewSender creates a Sender over chain.
func NewSender(chain Chain, opts ...Option) *Sender {
	s := &Sender{
		chain:      chain,
		commitment: rpc.CommitmentConfirmed,
		multiplier: DefaultComputeMultiplier,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sender) buildSigned(ctx context.Context, instructions []solana.Instruction, payer solana.PrivateKey, signers []solana.PrivateKey) (*solana.Transaction, error) {
	blockhash, err := s.chain.GetLatestBlockhash(ctx, s.commitment)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blockhash: %w", err)
	}

	feePayer := payer
	if s.feePayer != nil {
		feePayer = *s.feePayer
	}
	tx, err := solana.NewTransaction(
		instructions,
		blockhash.Value.Blockhash,
		solana.TransactionPayer(feePayer.PublicKey()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}

	keyring := map[solana.PublicKey]solana.PrivateKey{
		payer.PublicKey():    payer,
		feePayer.PublicKey(): feePayer,
	}
	for _, signer := range signers {
		keyring[signer.PublicKey()] = signer
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if pk, ok := keyring[key]; ok {
			return &pk
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return tx, nil
}

// Send signs and submits the instructions in one transaction paid for
// by payer.
func (s *Sender) Send(ctx context.Context, instructions []solana.Instruction, payer solana.PrivateKey, signers ...solana.PrivateKey) (solana.Signature, error) {
	tx, err := s.buildSigned(ctx, instructions, payer, signers)
	if err != nil {
		return solana.Signature{}, err
	}

	signature, err := s.chain.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	s.logger.Debug().Str("signature", signature.String()).Msg("transaction submitted")
	return signature, nil
}

// SendWithRetries submits like Send but retries transient failures with
// exponential backoff. A fresh blockhash is fetched on every attempt so
// retries survive blockhash expiry.
func (s *Sender) SendWithRetries(ctx context.Context, instructions []solana.Instruction, payer solana.PrivateKey, signers ...solana.PrivateKey) (solana.Signature, error) {
	var signature solana.Signature
	attempt := 0

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	policy.Multiplier = 2

	operation := func() error {
		attempt++
		sig, err := s.Send(ctx, instructions, payer, signers...)
		if err != nil {
			s.logger.Warn().Int("attempt", attempt).Err(err).Msg("transaction attempt failed")
			return err
		}
		signature = sig
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, retryMaxAttempts-1), ctx))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed after %d attempts: %w", attempt, err)
	}
	return signature, nil
}

// EstimateComputeUnits simulates the instructions and returns the
// padded unit budget. A failed simulation surfaces its reported error;
// ok is false when the simulation reports no consumption, and callers
// then fall back to a static budget.
func (s *Sender) EstimateComputeUnits(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey) (uint64, bool, error) {
	tx, err := solana.NewTransaction(
		instructions,
		solana.Hash{},
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to build simulation transaction: %w", err)
	}

	result, err := s.chain.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		ReplaceRecentBlockhash: true,
		Commitment:             s.commitment,
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to simulate transaction: %w", err)
	}
	if result == nil || result.Value == nil {
		return 0, false, nil
	}
	if simErr := result.Value.Err; simErr != nil {
		return 0, false, fmt.Errorf("transaction simulation failed: %v", simErr)
	}
	if result.Value.UnitsConsumed == nil {
		return 0, false, nil
	}

	padded := uint64(math.Floor(float64(*result.Value.UnitsConsumed) * s.multiplier))
	s.logger.Debug().
		Uint64("consumed", *result.Value.UnitsConsumed).
		Uint64("budget", padded).
		Msg("compute units estimated")
	return padded, true, nil
}
