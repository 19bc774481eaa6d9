package decode

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/near/borsh-go"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/derive"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
)

// Metadata is the on-chain metadata record of a mint.
type Metadata struct {
	Key                 tokenmeta.Key
	UpdateAuthority     solana.PublicKey
	Mint                solana.PublicKey
	Data                tokenmeta.Data
	PrimarySaleHappened bool
	IsMutable           bool
	EditionNonce        *uint8
	TokenStandard       *tokenmeta.TokenStandard
	Collection          *tokenmeta.Collection
	Uses                *tokenmeta.Uses
	CollectionDetails   *tokenmeta.CollectionDetails
	ProgrammableConfig  *tokenmeta.ProgrammableConfig
}

// RuleSet returns the rule set address of a programmable asset, nil
// otherwise.
func (m *Metadata) RuleSet() *solana.PublicKey {
	if m.ProgrammableConfig == nil {
		return nil
	}
	return m.ProgrammableConfig.RuleSet()
}

// MasterEdition is the supply record of a master edition mint.
type MasterEdition struct {
	Key       tokenmeta.Key
	Supply    uint64
	MaxSupply *uint64
}

// Edition is the record of a print edition, pointing back at its
// parent master edition.
type Edition struct {
	Key     tokenmeta.Key
	Parent  solana.PublicKey
	Edition uint64
}

// EditionMarker is a bitfield page tracking claimed print editions.
type EditionMarker struct {
	Key    tokenmeta.Key
	Ledger [31]uint8
}

// TokenRecord carries the delegation and lock state of a programmable
// token account.
type TokenRecord struct {
	Key             tokenmeta.Key
	Bump            uint8
	State           uint8
	RuleSetRevision *uint64
	Delegate        *solana.PublicKey
	DelegateRole    *uint8
	LockedTransfer  *solana.PublicKey
}

// MetadataDelegateRecord is the persistent record of a metadata-record
// delegation.
type MetadataDelegateRecord struct {
	Key             tokenmeta.Key
	Bump            uint8
	Mint            solana.PublicKey
	Delegate        solana.PublicKey
	UpdateAuthority solana.PublicKey
}

// CollectionAuthorityRecord marks an approved collection authority.
type CollectionAuthorityRecord struct {
	Key             tokenmeta.Key
	Bump            uint8
	UpdateAuthority *solana.PublicKey
}

// UseAuthorityRecord grants a use allowance.
type UseAuthorityRecord struct {
	Key         tokenmeta.Key
	AllowedUses uint64
	Bump        uint8
}

func fetchBorsh(ctx context.Context, fetcher AccountFetcher, account solana.PublicKey, dst interface{}, what string) error {
	data, err := AccountData(ctx, fetcher, account)
	if err != nil {
		return err
	}
	if err := borsh.Deserialize(dst, data); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecodeFailed, what, account, err)
	}
	return nil
}

// GetMetadata fetches and unpacks the metadata record at account.
func GetMetadata(ctx context.Context, fetcher AccountFetcher, account solana.PublicKey) (*Metadata, error) {
	var md Metadata
	if err := fetchBorsh(ctx, fetcher, account, &md, "metadata"); err != nil {
		return nil, err
	}
	if md.Key != tokenmeta.KeyMetadataV1 {
		return nil, fmt.Errorf("%w: %s is not a metadata record (key %d)", ErrDecodeFailed, account, md.Key)
	}
	return &md, nil
}

// GetMetadataFromMint derives the metadata address of mint and fetches
// it.
func GetMetadataFromMint(ctx context.Context, fetcher AccountFetcher, mint solana.PublicKey) (*Metadata, error) {
	return GetMetadata(ctx, fetcher, derive.Metadata(mint))
}

// GetMasterEdition fetches and unpacks a master edition record.
func GetMasterEdition(ctx context.Context, fetcher AccountFetcher, account solana.PublicKey) (*MasterEdition, error) {
	var me MasterEdition
	if err := fetchBorsh(ctx, fetcher, account, &me, "master edition"); err != nil {
		return nil, err
	}
	if me.Key != tokenmeta.KeyMasterEditionV2 && me.Key != tokenmeta.KeyMasterEditionV1 {
		return nil, fmt.Errorf("%w: %s is not a master edition record (key %d)", ErrDecodeFailed, account, me.Key)
	}
	return &me, nil
}

// GetMasterEditionFromMint derives the edition address of mint and
// fetches it as a master edition.
func GetMasterEditionFromMint(ctx context.Context, fetcher AccountFetcher, mint solana.PublicKey) (*MasterEdition, error) {
	return GetMasterEdition(ctx, fetcher, derive.Edition(mint))
}

// GetEdition fetches and unpacks a print edition record.
func GetEdition(ctx context.Context, fetcher AccountFetcher, account solana.PublicKey) (*Edition, error) {
	var ed Edition
	if err := fetchBorsh(ctx, fetcher, account, &ed, "edition"); err != nil {
		return nil, err
	}
	if ed.Key != tokenmeta.KeyEditionV1 {
		return nil, fmt.Errorf("%w: %s is not an edition record (key %d)", ErrDecodeFailed, account, ed.Key)
	}
	return &ed, nil
}

// GetEditionMarker fetches the marker page covering edition for mint.
func GetEditionMarker(ctx context.Context, fetcher AccountFetcher, mint solana.PublicKey, edition uint64) (*EditionMarker, error) {
	var marker EditionMarker
	account := derive.EditionMarker(mint, edition)
	if err := fetchBorsh(ctx, fetcher, account, &marker, "edition marker"); err != nil {
		return nil, err
	}
	if marker.Key != tokenmeta.KeyEditionMarker {
		return nil, fmt.Errorf("%w: %s is not an edition marker (key %d)", ErrDecodeFailed, account, marker.Key)
	}
	return &marker, nil
}

// GetTokenRecord fetches the token record of (mint, token account).
func GetTokenRecord(ctx context.Context, fetcher AccountFetcher, mint, tokenAccount solana.PublicKey) (*TokenRecord, error) {
	var record TokenRecord
	account := derive.TokenRecord(mint, tokenAccount)
	if err := fetchBorsh(ctx, fetcher, account, &record, "token record"); err != nil {
		return nil, err
	}
	if record.Key != tokenmeta.KeyTokenRecord {
		return nil, fmt.Errorf("%w: %s is not a token record (key %d)", ErrDecodeFailed, account, record.Key)
	}
	return &record, nil
}

// GetMetadataDelegateRecord fetches the persistent delegate record of
// (mint, role, update authority, delegate).
func GetMetadataDelegateRecord(ctx context.Context, fetcher AccountFetcher, mint solana.PublicKey, role tokenmeta.Role, updateAuthority, delegate solana.PublicKey) (*MetadataDelegateRecord, error) {
	account, err := derive.MetadataDelegateRecord(mint, role, updateAuthority, delegate)
	if err != nil {
		return nil, err
	}
	var record MetadataDelegateRecord
	if err := fetchBorsh(ctx, fetcher, account, &record, "metadata delegate record"); err != nil {
		return nil, err
	}
	if record.Key != tokenmeta.KeyMetadataDelegate {
		return nil, fmt.Errorf("%w: %s is not a metadata delegate record (key %d)", ErrDecodeFailed, account, record.Key)
	}
	return &record, nil
}

// GetCollectionAuthorityRecord fetches the collection authority record
// of (mint, authority).
func GetCollectionAuthorityRecord(ctx context.Context, fetcher AccountFetcher, mint, authority solana.PublicKey) (*CollectionAuthorityRecord, error) {
	var record CollectionAuthorityRecord
	account := derive.CollectionAuthorityRecord(mint, authority)
	if err := fetchBorsh(ctx, fetcher, account, &record, "collection authority record"); err != nil {
		return nil, err
	}
	if record.Key != tokenmeta.KeyCollectionAuthorityRecord {
		return nil, fmt.Errorf("%w: %s is not a collection authority record (key %d)", ErrDecodeFailed, account, record.Key)
	}
	return &record, nil
}

// GetUseAuthorityRecord fetches the use authority record of
// (mint, user).
func GetUseAuthorityRecord(ctx context.Context, fetcher AccountFetcher, mint, user solana.PublicKey) (*UseAuthorityRecord, error) {
	var record UseAuthorityRecord
	account := derive.UseAuthorityRecord(mint, user)
	if err := fetchBorsh(ctx, fetcher, account, &record, "use authority record"); err != nil {
		return nil, err
	}
	if record.Key != tokenmeta.KeyUseAuthorityRecord {
		return nil, fmt.Errorf("%w: %s is not a use authority record (key %d)", ErrDecodeFailed, account, record.Key)
	}
	return &record, nil
}

// GetMint fetches and unpacks an SPL token mint.
func GetMint(ctx context.Context, fetcher AccountFetcher, mint solana.PublicKey) (*token.Mint, error) {
	data, err := AccountData(ctx, fetcher, mint)
	if err != nil {
		return nil, err
	}
	var m token.Mint
	if err := bin.NewBinDecoder(data).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: mint %s: %v", ErrDecodeFailed, mint, err)
	}
	return &m, nil
}

// GetTokenAccount fetches and unpacks an SPL token account.
func GetTokenAccount(ctx context.Context, fetcher AccountFetcher, account solana.PublicKey) (*token.Account, error) {
	data, err := AccountData(ctx, fetcher, account)
	if err != nil {
		return nil, err
	}
	var ta token.Account
	if err := bin.NewBinDecoder(data).Decode(&ta); err != nil {
		return nil, fmt.Errorf("%w: token account %s: %v", ErrDecodeFailed, account, err)
	}
	return &ta, nil
}
