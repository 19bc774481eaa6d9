// Package derive computes the program derived addresses of the token
// metadata program. Every address the program reads or writes hangs off
// the mint through a fixed seed tuple; these helpers encode the tuples
// so callers never assemble seeds by hand.
package derive

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
)

// find panics on derivation failure. FindProgramAddress only fails when
// no bump in [0, 255] lands off-curve, which does not happen for the
// fixed seed shapes used here.
func find(seeds [][]byte, program solana.PublicKey) solana.PublicKey {
	addr, _, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		panic(fmt.Sprintf("pda derivation failed: %v", err))
	}
	return addr
}

func metadataSeeds(mint solana.PublicKey) [][]byte {
	return [][]byte{
		[]byte(tokenmeta.SeedMetadata),
		tokenmeta.ProgramID.Bytes(),
		mint.Bytes(),
	}
}

// Metadata returns the metadata account address for mint.
func Metadata(mint solana.PublicKey) solana.PublicKey {
	return find(metadataSeeds(mint), tokenmeta.ProgramID)
}

// Edition returns the master edition (or edition) account address for
// mint.
func Edition(mint solana.PublicKey) solana.PublicKey {
	seeds := append(metadataSeeds(mint), []byte(tokenmeta.SeedEdition))
	return find(seeds, tokenmeta.ProgramID)
}

// EditionMarker returns the marker account that tracks print edition
// number. Markers are paged, each page covering a fixed span of
// edition numbers.
func EditionMarker(mint solana.PublicKey, edition uint64) solana.PublicKey {
	page := strconv.FormatUint(edition/tokenmeta.EditionMarkerSize, 10)
	seeds := append(metadataSeeds(mint), []byte(tokenmeta.SeedEdition), []byte(page))
	return find(seeds, tokenmeta.ProgramID)
}

// TokenRecord returns the token record address for the (mint, token
// account) pair. Token records only exist for programmable assets.
func TokenRecord(mint, token solana.PublicKey) solana.PublicKey {
	seeds := append(metadataSeeds(mint), []byte(tokenmeta.SeedTokenRecord), token.Bytes())
	return find(seeds, tokenmeta.ProgramID)
}

// MetadataDelegateRecord returns the persistent delegate record for a
// metadata-record role. The role contributes its own seed, so the same
// (mint, authority, delegate) triple yields distinct records per role.
func MetadataDelegateRecord(mint solana.PublicKey, role tokenmeta.Role, updateAuthority, delegate solana.PublicKey) (solana.PublicKey, error) {
	roleSeed, err := role.SeedString()
	if err != nil {
		return solana.PublicKey{}, err
	}
	seeds := append(metadataSeeds(mint), []byte(roleSeed), updateAuthority.Bytes(), delegate.Bytes())
	return find(seeds, tokenmeta.ProgramID), nil
}

// CollectionAuthorityRecord returns the record that marks authority as
// an approved collection authority for mint.
func CollectionAuthorityRecord(mint, authority solana.PublicKey) solana.PublicKey {
	seeds := append(metadataSeeds(mint), []byte(tokenmeta.SeedCollectionAuthority), authority.Bytes())
	return find(seeds, tokenmeta.ProgramID)
}

// UseAuthorityRecord returns the record that grants user a use
// allowance for mint.
func UseAuthorityRecord(mint, user solana.PublicKey) solana.PublicKey {
	seeds := append(metadataSeeds(mint), []byte(tokenmeta.SeedUseAuthority), user.Bytes())
	return find(seeds, tokenmeta.ProgramID)
}

// CandyMachineCreator returns the creator PDA a v2 candy machine signs
// mints with. Its presence in the first creator slot identifies a drop.
func CandyMachineCreator(candyMachine solana.PublicKey) solana.PublicKey {
	seeds := [][]byte{
		[]byte(tokenmeta.SeedCandyMachine),
		candyMachine.Bytes(),
	}
	return find(seeds, tokenmeta.CandyMachineV2ProgramID)
}

// AssociatedToken returns the associated token account of wallet for
// mint.
func AssociatedToken(wallet, mint solana.PublicKey) solana.PublicKey {
	addr, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		panic(fmt.Sprintf("ata derivation failed: %v", err))
	}
	return addr
}
