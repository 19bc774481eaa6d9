// Package verify attests creators and collection membership on a
// metadata record.
package verify

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/derive"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/transaction"
)

// Args is the versioned parameter envelope. V1 is the only version.
type Args interface {
	isVerifyArgs()
}

// V1 verifies a creator signature when CollectionMint is nil, and
// collection membership otherwise.
type V1 struct {
	// Authority signs the attestation: the creator itself, the
	// collection update authority, or an approved collection delegate.
	Authority solana.PublicKey
	// Mint of the asset whose metadata is being attested.
	Mint decode.Address
	// CollectionMint selects collection verification.
	CollectionMint decode.Address
	// IsDelegate marks the authority as a collection delegate rather
	// than the update authority; the delegate record slot is then
	// included.
	IsDelegate bool
}

func (V1) isVerifyArgs() {}

// Client is the RPC surface Send needs.
type Client interface {
	decode.AccountFetcher
	transaction.Chain
}

// VerifiableStandard reports whether the token standard admits creator
// or collection attestation. Only plain and programmable non-fungibles
// do; editions and the fungible family carry no verifiable attestation.
func VerifiableStandard(standard *tokenmeta.TokenStandard) bool {
	if standard == nil {
		return true
	}
	switch *standard {
	case tokenmeta.NonFungible, tokenmeta.ProgrammableNonFungible:
		return true
	default:
		return false
	}
}

// CollectionSlots resolves the collection-side accounts of a collection
// attestation. The delegate record, present only for delegate
// authorities, is seeded with the attested asset's update authority.
func CollectionSlots(collectionMint, updateAuthority, authority solana.PublicKey, isDelegate bool) (metadata, edition solana.PublicKey, delegateRecord *solana.PublicKey, err error) {
	metadata = derive.Metadata(collectionMint)
	edition = derive.Edition(collectionMint)
	if isDelegate {
		record, err := derive.MetadataDelegateRecord(collectionMint, tokenmeta.RoleCollection, updateAuthority, authority)
		if err != nil {
			return solana.PublicKey{}, solana.PublicKey{}, nil, err
		}
		delegateRecord = &record
	}
	return metadata, edition, delegateRecord, nil
}

// Instruction assembles the Verify instruction for args.
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
		if !VerifiableStandard(md.TokenStandard) {
			return nil, fmt.Errorf("mint %s carries no verifiable attestation", mint)
		}

		accounts := tokenmeta.VerifyAccounts{
			Authority: a.Authority,
			Metadata:  derive.Metadata(mint),
		}
		collectionMint, err := decode.ResolveOptional(a.CollectionMint)
		if err != nil {
			return nil, fmt.Errorf("invalid collection mint: %w", err)
		}
		if collectionMint == nil {
			return tokenmeta.BuildVerify(accounts, tokenmeta.VerifyCreatorV1())
		}

		metadata, edition, delegateRecord, err := CollectionSlots(*collectionMint, md.UpdateAuthority, a.Authority, a.IsDelegate)
		if err != nil {
			return nil, err
		}
		accounts.CollectionMint = collectionMint
		accounts.CollectionMetadata = &metadata
		accounts.CollectionMasterEdition = &edition
		accounts.DelegateRecord = delegateRecord
		return tokenmeta.BuildVerify(accounts, tokenmeta.VerifyCollectionV1())
	default:
		return nil, fmt.Errorf("unsupported args version %T", args)
	}
}

// Send assembles the attestation and submits it signed by authority.
func Send(ctx context.Context, client Client, authority solana.PrivateKey, args Args, opts ...transaction.Option) (solana.Signature, error) {
	instruction, err := Instruction(ctx, client, args)
	if err != nil {
		return solana.Signature{}, err
	}
	sender := transaction.NewSender(client, opts...)
	return sender.SendWithRetries(ctx, []solana.Instruction{instruction}, authority)
}
