// Package asset ties the accounts of one mint together: metadata,
// edition, token records and the holder of the token itself. It is the
// lookup layer the operation packages lean on when the caller hands
// them nothing but a mint.
package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/derive"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
)

var (
	// ErrNoHolder means no token account holds exactly one token of the
	// mint.
	ErrNoHolder = errors.New("no holder of amount 1")
	// ErrAmbiguousHolder means more than one token account holds exactly
	// one token, so the holder cannot be picked automatically.
	ErrAmbiguousHolder = errors.New("multiple holders of amount 1")
)

// TokenClient is the read surface the locator needs. *rpc.Client
// satisfies it.
type TokenClient interface {
	decode.AccountFetcher
	GetTokenLargestAccounts(ctx context.Context, mint solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenLargestAccountsResult, error)
}

// Asset bundles the derived addresses of one mint.
type Asset struct {
	Mint     solana.PublicKey
	Metadata solana.PublicKey
	Edition  *solana.PublicKey
}

// New builds the handle for mint. The edition address is attached when
// the token standard calls for one; a nil standard is treated as
// non-fungible, matching fresh mints that have no metadata yet.
func New(mint solana.PublicKey, standard *tokenmeta.TokenStandard) Asset {
	a := Asset{Mint: mint, Metadata: derive.Metadata(mint)}
	if tokenmeta.NeedsEdition(standard) {
		a.AddEdition()
	}
	return a
}

// AddEdition attaches the edition address.
func (a *Asset) AddEdition() {
	edition := derive.Edition(a.Mint)
	a.Edition = &edition
}

// TokenRecord returns the token record address for a token account of
// this mint.
func (a Asset) TokenRecord(tokenAccount solana.PublicKey) solana.PublicKey {
	return derive.TokenRecord(a.Mint, tokenAccount)
}

// FetchMetadata reads the metadata record of the asset.
func (a Asset) FetchMetadata(ctx context.Context, fetcher decode.AccountFetcher) (*decode.Metadata, error) {
	return decode.GetMetadata(ctx, fetcher, a.Metadata)
}

// FindSingleHolder locates the one token account holding exactly one
// token of mint. This is the holder lookup for non-fungibles, where
// supply is one by construction.
func FindSingleHolder(ctx context.Context, client TokenClient, mint solana.PublicKey) (solana.PublicKey, error) {
	result, err := client.GetTokenLargestAccounts(ctx, mint, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: token largest accounts of %s: %w", decode.ErrTransport, mint, err)
	}

	var holders []solana.PublicKey
	if result != nil {
		for _, entry := range result.Value {
			if entry != nil && entry.Amount == "1" {
				holders = append(holders, entry.Address)
			}
		}
	}
	switch len(holders) {
	case 0:
		return solana.PublicKey{}, fmt.Errorf("%w: mint %s", ErrNoHolder, mint)
	case 1:
		return holders[0], nil
	default:
		return solana.PublicKey{}, fmt.Errorf("%w: mint %s has %d", ErrAmbiguousHolder, mint, len(holders))
	}
}

// TokenOwner returns the wallet owning tokenAccount.
func TokenOwner(ctx context.Context, fetcher decode.AccountFetcher, tokenAccount solana.PublicKey) (solana.PublicKey, error) {
	account, err := decode.GetTokenAccount(ctx, fetcher, tokenAccount)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return account.Owner, nil
}
