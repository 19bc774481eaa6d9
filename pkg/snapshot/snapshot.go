// Package snapshot lists accounts of interest through program account
// scans: mints by update authority, mints by creator, and holders of a
// mint. Scans are heavy RPC calls; run them against an endpoint that
// allows getProgramAccounts.
package snapshot

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/near/borsh-go"
	"github.com/rs/zerolog"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
)

// Client is the RPC surface the scanner needs. *rpc.Client satisfies
// it.
type Client interface {
	GetProgramAccountsWithOpts(ctx context.Context, program solana.PublicKey, opts *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error)
}

// Scanner runs program account scans.
type Scanner struct {
	client Client
	logger zerolog.Logger
}

// Option tweaks a Scanner.
type Option func(*Scanner)

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scanner) { s.logger = logger }
}

// NewScanner creates a Scanner over client.
func NewScanner(client Client, opts ...Option) *Scanner {
	s := &Scanner{client: client, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) scanMetadata(ctx context.Context, offset uint64, key solana.PublicKey) ([]solana.PublicKey, error) {
	accounts, err := s.client.GetProgramAccountsWithOpts(ctx, tokenmeta.ProgramID, &rpc.GetProgramAccountsOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: offset, Bytes: solana.Base58(key.Bytes())}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: metadata scan: %w", decode.ErrTransport, err)
	}

	mints := make([]solana.PublicKey, 0, len(accounts))
	for _, keyed := range accounts {
		if keyed == nil || keyed.Account == nil {
			continue
		}
		var md decode.Metadata
		if err := borsh.Deserialize(&md, keyed.Account.Data.GetBinary()); err != nil {
			s.logger.Warn().Str("account", keyed.Pubkey.String()).Err(err).Msg("skipping undecodable metadata account")
			continue
		}
		mints = append(mints, md.Mint)
	}
	return mints, nil
}

// MintsByUpdateAuthority lists the mints whose metadata carries the
// given update authority.
func (s *Scanner) MintsByUpdateAuthority(ctx context.Context, authority solana.PublicKey) ([]solana.PublicKey, error) {
	return s.scanMetadata(ctx, 1, authority)
}

// MintsByCreator lists the mints that name creator at the given
// position of their creators vec. Position counts from zero.
func (s *Scanner) MintsByCreator(ctx context.Context, creator solana.PublicKey, position int) ([]solana.PublicKey, error) {
	if position < 0 {
		return nil, fmt.Errorf("creator position must not be negative, got %d", position)
	}
	offset := uint64(tokenmeta.OffsetToCreators + position*tokenmeta.PubkeyLength)
	return s.scanMetadata(ctx, offset, creator)
}

// Holder is one token account holding a mint.
type Holder struct {
	TokenAccount solana.PublicKey
	Owner        solana.PublicKey
	Amount       uint64
}

// HoldersByMint lists the token accounts of mint along with their
// owners.
func (s *Scanner) HoldersByMint(ctx context.Context, mint solana.PublicKey) ([]Holder, error) {
	size := uint64(tokenmeta.TokenAccountSize)
	accounts, err := s.client.GetProgramAccountsWithOpts(ctx, solana.TokenProgramID, &rpc.GetProgramAccountsOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: 0, Bytes: solana.Base58(mint.Bytes())}},
			{DataSize: size},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: holder scan: %w", decode.ErrTransport, err)
	}

	holders := make([]Holder, 0, len(accounts))
	for _, keyed := range accounts {
		if keyed == nil || keyed.Account == nil {
			continue
		}
		var ta token.Account
		if err := bin.NewBinDecoder(keyed.Account.Data.GetBinary()).Decode(&ta); err != nil {
			s.logger.Warn().Str("account", keyed.Pubkey.String()).Err(err).Msg("skipping undecodable token account")
			continue
		}
		holders = append(holders, Holder{
			TokenAccount: keyed.Pubkey,
			Owner:        ta.Owner,
			Amount:       ta.Amount,
		})
	}
	return holders, nil
}
