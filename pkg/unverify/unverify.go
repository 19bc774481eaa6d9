// Package unverify withdraws creator and collection attestations from a
// metadata record.
package unverify

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/derive"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/transaction"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/verify"
)

// Args is the versioned parameter envelope. V1 is the only version.
type Args interface {
	isUnverifyArgs()
}

// V1 withdraws a creator signature when CollectionMint is nil, and
// collection membership otherwise. IsDelegate marks the authority as a
// collection delegate, adding the delegate record slot.
type V1 struct {
	Authority      solana.PublicKey
	Mint           decode.Address
	CollectionMint decode.Address
	IsDelegate     bool
}

func (V1) isUnverifyArgs() {}

// Client is the RPC surface Send needs.
type Client interface {
	decode.AccountFetcher
	transaction.Chain
}

// Instruction assembles the Unverify instruction for args.
func Instruction(ctx context.Context, fetcher decode.AccountFetcher, args Args) (solana.Instruction, error) {
	switch a := args.(type) {
	case V1:
		mint, err := decode.Resolve(a.Mint)
		if err != nil {
			return nil, fmt.Errorf("invalid mint: %w", err)
		}
		md, err := decode.GetMetadataFromMint(ctx, fetcher, mint)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset metadata: %w", err)
		}
		if !verify.VerifiableStandard(md.TokenStandard) {
			return nil, fmt.Errorf("mint %s carries no verifiable attestation", mint)
		}

		accounts := tokenmeta.UnverifyAccounts{
			Authority: a.Authority,
			Metadata:  derive.Metadata(mint),
		}
		collectionMint, err := decode.ResolveOptional(a.CollectionMint)
		if err != nil {
			return nil, fmt.Errorf("invalid collection mint: %w", err)
		}
		if collectionMint == nil {
			return tokenmeta.BuildUnverify(accounts, tokenmeta.VerifyCreatorV1())
		}

		collectionMetadata, _, delegateRecord, err := verify.CollectionSlots(*collectionMint, md.UpdateAuthority, a.Authority, a.IsDelegate)
		if err != nil {
			return nil, err
		}
		accounts.DelegateRecord = delegateRecord
		accounts.CollectionMint = collectionMint
		accounts.CollectionMetadata = &collectionMetadata
		return tokenmeta.BuildUnverify(accounts, tokenmeta.VerifyCollectionV1())
	default:
		return nil, fmt.Errorf("unsupported args version %T", args)
	}
}

// Send assembles the withdrawal and submits it signed by authority.
func Send(ctx context.Context, client Client, authority solana.PrivateKey, args Args, opts ...transaction.Option) (solana.Signature, error) {
	instruction, err := Instruction(ctx, client, args)
	if err != nil {
		return solana.Signature{}, err
	}
	sender := transaction.NewSender(client, opts...)
	return sender.SendWithRetries(ctx, []solana.Instruction{instruction}, authority)
}
