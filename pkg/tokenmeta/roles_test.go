package tokenmeta

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

func TestDelegateVariantTags(t *testing.T) {
	cases := []struct {
		role Role
		tag  byte
	}{
		{RoleCollection, 0},
		{RoleSale, 1},
		{RoleTransfer, 2},
		{RoleData, 3},
		{RoleUtility, 4},
		{RoleStaking, 5},
		{RoleStandard, 6},
		{RoleLockedTransfer, 7},
		{RoleProgrammableConfig, 8},
		{RoleAuthorityItem, 9},
		{RoleDataItem, 10},
		{RoleCollectionItem, 11},
		{RoleProgrammableConfigItem, 12},
		{RolePrintDelegate, 13},
	}
	locked := testKey(42)
	for _, c := range cases {
		var lockedAddress *solana.PublicKey
		if c.role == RoleLockedTransfer {
			lockedAddress = &locked
		}
		args, err := NewDelegateArgs(c.role, 1, lockedAddress, nil)
		if err != nil {
			t.Fatalf("role %s: %v", c.role, err)
		}
		raw, err := borsh.Serialize(args)
		if err != nil {
			t.Fatalf("role %s: serialize: %v", c.role, err)
		}
		if raw[0] != c.tag {
			t.Fatalf("role %s: expected variant tag %d, got %d", c.role, c.tag, raw[0])
		}
	}
}

func TestRevokeVariantTags(t *testing.T) {
	cases := []struct {
		role Role
		tag  byte
	}{
		{RoleCollection, 0},
		{RoleSale, 1},
		{RoleTransfer, 2},
		{RoleData, 3},
		{RoleUtility, 4},
		{RoleStaking, 5},
		{RoleStandard, 6},
		{RoleLockedTransfer, 7},
		{RoleProgrammableConfig, 8},
		{RoleMigration, 9},
		{RoleAuthorityItem, 10},
		{RoleDataItem, 11},
		{RoleCollectionItem, 12},
		{RoleProgrammableConfigItem, 13},
		{RolePrintDelegate, 14},
	}
	for _, c := range cases {
		args, err := NewRevokeArgs(c.role)
		if err != nil {
			t.Fatalf("role %s: %v", c.role, err)
		}
		raw, err := borsh.Serialize(args)
		if err != nil {
			t.Fatalf("role %s: serialize: %v", c.role, err)
		}
		if raw[0] != c.tag {
			t.Fatalf("role %s: expected variant tag %d, got %d", c.role, c.tag, raw[0])
		}
	}
}

func TestMigrationCannotBeDelegated(t *testing.T) {
	if _, err := NewDelegateArgs(RoleMigration, 0, nil, nil); err == nil {
		t.Fatal("expected error delegating the Migration role")
	}
}

func TestLockedTransferRequiresAddress(t *testing.T) {
	if _, err := NewDelegateArgs(RoleLockedTransfer, 1, nil, nil); err == nil {
		t.Fatal("expected error without a locked address")
	}
}

func TestRoleSeedStrings(t *testing.T) {
	cases := map[Role]string{
		RoleCollection:             "collection_delegate",
		RoleData:                   "data_delegate",
		RoleProgrammableConfig:     "programmable_config_delegate",
		RoleAuthorityItem:          "authority_item_delegate",
		RoleDataItem:               "data_item_delegate",
		RoleCollectionItem:         "collection_item_delegate",
		RoleProgrammableConfigItem: "prog_config_item_delegate",
	}
	for role, want := range cases {
		seed, err := role.SeedString()
		if err != nil {
			t.Fatalf("role %s: %v", role, err)
		}
		if seed != want {
			t.Fatalf("role %s: expected seed %q, got %q", role, want, seed)
		}
	}
	if _, err := RoleTransfer.SeedString(); err == nil {
		t.Fatal("token record roles must not expose a metadata record seed")
	}
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleCollection, RoleSale, RoleStandard, RolePrintDelegate} {
		parsed, ok := ParseRole(role.String())
		if !ok || parsed != role {
			t.Fatalf("role %s did not round-trip", role)
		}
	}
	if _, ok := ParseRole("Bogus"); ok {
		t.Fatal("unknown role name must not parse")
	}
}
