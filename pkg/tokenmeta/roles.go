package tokenmeta

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// Role names a delegate kind. Roles fall into two families with
// different seed tuples and account slots: token-record delegates are
// attached to a token account, metadata-record delegates live in a
// persistent record keyed by {mint, role, update authority, delegate}.
type Role uint8

const (
	RoleCollection Role = iota
	RoleSale
	RoleTransfer
	RoleData
	RoleUtility
	RoleStaking
	RoleStandard
	RoleLockedTransfer
	RoleProgrammableConfig
	RoleMigration
	RoleAuthorityItem
	RoleDataItem
	RoleCollectionItem
	RoleProgrammableConfigItem
	RolePrintDelegate
)

// RecordKind partitions roles by the record backing the delegation.
type RecordKind uint8

const (
	// RecordNone: the delegation is written directly on the token
	// account (Standard) and needs no extra record slot.
	RecordNone RecordKind = iota
	// RecordToken: the delegation lives in the token record of
	// (mint, token account).
	RecordToken
	// RecordMetadata: the delegation lives in a metadata delegate
	// record of (mint, role, update authority, delegate).
	RecordMetadata
)

type roleSpec struct {
	name        string
	record      RecordKind
	seed        string // metadata delegate record seed, RecordMetadata only
	delegateTag int8   // variant index in DelegateArgs, -1 if revoke-only
	revokeTag   int8
	amount      bool // delegate variant threads an amount
}

// One row per role; both the delegate and revoke assemblers and the PDA
// derivation key off this table.
var roles = map[Role]roleSpec{
	RoleCollection:             {name: "Collection", record: RecordMetadata, seed: "collection_delegate", delegateTag: 0, revokeTag: 0},
	RoleSale:                   {name: "Sale", record: RecordToken, delegateTag: 1, revokeTag: 1, amount: true},
	RoleTransfer:               {name: "Transfer", record: RecordToken, delegateTag: 2, revokeTag: 2, amount: true},
	RoleData:                   {name: "Data", record: RecordMetadata, seed: "data_delegate", delegateTag: 3, revokeTag: 3},
	RoleUtility:                {name: "Utility", record: RecordToken, delegateTag: 4, revokeTag: 4, amount: true},
	RoleStaking:                {name: "Staking", record: RecordToken, delegateTag: 5, revokeTag: 5, amount: true},
	RoleStandard:               {name: "Standard", record: RecordNone, delegateTag: 6, revokeTag: 6, amount: true},
	RoleLockedTransfer:         {name: "LockedTransfer", record: RecordToken, delegateTag: 7, revokeTag: 7, amount: true},
	RoleProgrammableConfig:     {name: "ProgrammableConfig", record: RecordMetadata, seed: "programmable_config_delegate", delegateTag: 8, revokeTag: 8},
	RoleMigration:              {name: "Migration", record: RecordToken, delegateTag: -1, revokeTag: 9},
	RoleAuthorityItem:          {name: "AuthorityItem", record: RecordMetadata, seed: "authority_item_delegate", delegateTag: 9, revokeTag: 10},
	RoleDataItem:               {name: "DataItem", record: RecordMetadata, seed: "data_item_delegate", delegateTag: 10, revokeTag: 11},
	RoleCollectionItem:         {name: "CollectionItem", record: RecordMetadata, seed: "collection_item_delegate", delegateTag: 11, revokeTag: 12},
	RoleProgrammableConfigItem: {name: "ProgrammableConfigItem", record: RecordMetadata, seed: "prog_config_item_delegate", delegateTag: 12, revokeTag: 13},
	RolePrintDelegate:          {name: "PrintDelegate", record: RecordToken, delegateTag: 13, revokeTag: 14},
}

func (r Role) String() string {
	if spec, ok := roles[r]; ok {
		return spec.name
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// RecordKind returns the record family the role belongs to.
func (r Role) RecordKind() RecordKind {
	return roles[r].record
}

// SeedString returns the per-role seed used in metadata delegate record
// derivation. It is only defined for RecordMetadata roles.
func (r Role) SeedString() (string, error) {
	spec, ok := roles[r]
	if !ok || spec.record != RecordMetadata {
		return "", fmt.Errorf("role %s has no metadata delegate record seed", r)
	}
	return spec.seed, nil
}

// ParseRole maps a role name (as printed by String) back to the Role.
func ParseRole(s string) (Role, bool) {
	for role, spec := range roles {
		if spec.name == s {
			return role, true
		}
	}
	return 0, false
}

// NewDelegateArgs builds the DelegateArgs variant for role. Amount is
// consumed only by token-record roles and Standard; lockedAddress only
// by LockedTransfer.
func NewDelegateArgs(role Role, amount uint64, lockedAddress *solana.PublicKey, authData *AuthorizationData) (DelegateArgs, error) {
	spec, ok := roles[role]
	if !ok || spec.delegateTag < 0 {
		return DelegateArgs{}, fmt.Errorf("role %s cannot be delegated", role)
	}

	args := DelegateArgs{Enum: borsh.Enum(spec.delegateTag)}
	switch role {
	case RoleCollection:
		args.CollectionV1 = roleAuthData{AuthorizationData: authData}
	case RoleSale:
		args.SaleV1 = roleAmountAuthData{Amount: amount, AuthorizationData: authData}
	case RoleTransfer:
		args.TransferV1 = roleAmountAuthData{Amount: amount, AuthorizationData: authData}
	case RoleData:
		args.DataV1 = roleAuthData{AuthorizationData: authData}
	case RoleUtility:
		args.UtilityV1 = roleAmountAuthData{Amount: amount, AuthorizationData: authData}
	case RoleStaking:
		args.StakingV1 = roleAmountAuthData{Amount: amount, AuthorizationData: authData}
	case RoleStandard:
		args.StandardV1 = struct{ Amount uint64 }{Amount: amount}
	case RoleLockedTransfer:
		if lockedAddress == nil {
			return DelegateArgs{}, fmt.Errorf("LockedTransfer delegation requires a locked address")
		}
		args.LockedTransferV1 = lockedTransferData{Amount: amount, LockedAddress: *lockedAddress, AuthorizationData: authData}
	case RoleProgrammableConfig:
		args.ProgrammableConfigV1 = roleAuthData{AuthorizationData: authData}
	case RoleAuthorityItem:
		args.AuthorityItemV1 = roleAuthData{AuthorizationData: authData}
	case RoleDataItem:
		args.DataItemV1 = roleAuthData{AuthorizationData: authData}
	case RoleCollectionItem:
		args.CollectionItemV1 = roleAuthData{AuthorizationData: authData}
	case RoleProgrammableConfigItem:
		args.ProgrammableConfigItemV1 = roleAuthData{AuthorizationData: authData}
	case RolePrintDelegate:
		args.PrintDelegateV1 = roleAuthData{AuthorizationData: authData}
	}
	return args, nil
}

// NewRevokeArgs builds the RevokeArgs variant for role.
func NewRevokeArgs(role Role) (RevokeArgs, error) {
	spec, ok := roles[role]
	if !ok {
		return RevokeArgs{}, fmt.Errorf("unknown role %s", role)
	}
	return RevokeArgs{Enum: borsh.Enum(spec.revokeTag)}, nil
}
