// Package check evaluates expected-value predicates against metadata
// records. Predicates are written in a key=value grammar so they can be
// passed through flags, config files and job specs, and parse/format
// round-trip exactly.
package check

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
)

// Kind names the metadata field a predicate inspects.
type Kind uint8

const (
	KindName Kind = iota
	KindSymbol
	KindURI
	KindSellerFeeBasisPoints
	KindCreators
	KindUpdateAuthority
	KindPrimarySaleHappened
	KindIsMutable
	KindTokenStandard
	KindCollectionParent
	KindCollectionVerified
	KindRuleSet
)

var kindNames = map[Kind]string{
	KindName:                 "name",
	KindSymbol:               "symbol",
	KindURI:                  "uri",
	KindSellerFeeBasisPoints: "sfbp",
	KindCreators:             "creators",
	KindUpdateAuthority:      "update_authority",
	KindPrimarySaleHappened:  "primary_sale_happened",
	KindIsMutable:            "is_mutable",
	KindTokenStandard:        "token_standard",
	KindCollectionParent:     "collection_parent",
	KindCollectionVerified:   "collection_verified",
	KindRuleSet:              "rule_set",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MetadataValue is one parsed predicate. Only the field matching Kind
// is meaningful.
type MetadataValue struct {
	Kind     Kind
	Text     string
	Number   uint16
	Flag     bool
	Address  solana.PublicKey
	Standard tokenmeta.TokenStandard
	Creators []tokenmeta.Creator
}

func parseCreators(raw string) ([]tokenmeta.Creator, error) {
	if raw == "" {
		return nil, fmt.Errorf("creators predicate cannot be empty")
	}
	parts := strings.Split(raw, ",")
	creators := make([]tokenmeta.Creator, 0, len(parts))
	for _, part := range parts {
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("creator %q must be address:verified:share", part)
		}
		address, err := solana.PublicKeyFromBase58(fields[0])
		if err != nil {
			return nil, fmt.Errorf("creator address %q: %w", fields[0], err)
		}
		verified, err := strconv.ParseBool(fields[1])
		if err != nil {
			return nil, fmt.Errorf("creator verified flag %q: %w", fields[1], err)
		}
		share, err := strconv.ParseUint(fields[2], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("creator share %q: %w", fields[2], err)
		}
		creators = append(creators, tokenmeta.Creator{
			Address:  address,
			Verified: verified,
			Share:    uint8(share),
		})
	}
	return creators, nil
}

func formatCreators(creators []tokenmeta.Creator) string {
	parts := make([]string, 0, len(creators))
	for _, c := range creators {
		parts = append(parts, fmt.Sprintf("%s:%t:%d", c.Address, c.Verified, c.Share))
	}
	return strings.Join(parts, ",")
}

// FromString parses a key=value predicate.
func FromString(s string) (MetadataValue, error) {
	key, value, found := strings.Cut(s, "=")
	if !found {
		return MetadataValue{}, fmt.Errorf("predicate %q is not key=value", s)
	}

	switch key {
	case "name":
		return MetadataValue{Kind: KindName, Text: value}, nil
	case "symbol":
		return MetadataValue{Kind: KindSymbol, Text: value}, nil
	case "uri":
		return MetadataValue{Kind: KindURI, Text: value}, nil
	case "sfbp":
		number, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return MetadataValue{}, fmt.Errorf("sfbp %q: %w", value, err)
		}
		return MetadataValue{Kind: KindSellerFeeBasisPoints, Number: uint16(number)}, nil
	case "creators":
		creators, err := parseCreators(value)
		if err != nil {
			return MetadataValue{}, err
		}
		return MetadataValue{Kind: KindCreators, Creators: creators}, nil
	case "update_authority":
		address, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return MetadataValue{}, fmt.Errorf("update_authority %q: %w", value, err)
		}
		return MetadataValue{Kind: KindUpdateAuthority, Address: address}, nil
	case "primary_sale_happened", "is_mutable", "collection_verified":
		flag, err := strconv.ParseBool(value)
		if err != nil {
			return MetadataValue{}, fmt.Errorf("%s %q: %w", key, value, err)
		}
		kind := KindPrimarySaleHappened
		switch key {
		case "is_mutable":
			kind = KindIsMutable
		case "collection_verified":
			kind = KindCollectionVerified
		}
		return MetadataValue{Kind: kind, Flag: flag}, nil
	case "token_standard":
		standard, ok := tokenmeta.ParseTokenStandard(value)
		if !ok {
			return MetadataValue{}, fmt.Errorf("unknown token standard %q", value)
		}
		return MetadataValue{Kind: KindTokenStandard, Standard: standard}, nil
	case "collection_parent":
		address, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return MetadataValue{}, fmt.Errorf("collection_parent %q: %w", value, err)
		}
		return MetadataValue{Kind: KindCollectionParent, Address: address}, nil
	case "rule_set":
		address, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return MetadataValue{}, fmt.Errorf("rule_set %q: %w", value, err)
		}
		return MetadataValue{Kind: KindRuleSet, Address: address}, nil
	default:
		return MetadataValue{}, fmt.Errorf("unknown predicate key %q", key)
	}
}

// String formats the predicate back into its key=value form.
func (v MetadataValue) String() string {
	switch v.Kind {
	case KindName, KindSymbol, KindURI:
		return fmt.Sprintf("%s=%s", v.Kind, v.Text)
	case KindSellerFeeBasisPoints:
		return fmt.Sprintf("%s=%d", v.Kind, v.Number)
	case KindCreators:
		return fmt.Sprintf("%s=%s", v.Kind, formatCreators(v.Creators))
	case KindUpdateAuthority, KindCollectionParent, KindRuleSet:
		return fmt.Sprintf("%s=%s", v.Kind, v.Address)
	case KindPrimarySaleHappened, KindIsMutable, KindCollectionVerified:
		return fmt.Sprintf("%s=%t", v.Kind, v.Flag)
	case KindTokenStandard:
		return fmt.Sprintf("%s=%s", v.Kind, v.Standard)
	}
	return fmt.Sprintf("%s=", v.Kind)
}

// trimPadding drops the NUL padding on-chain string fields carry.
func trimPadding(s string) string {
	return strings.TrimRight(s, "\x00")
}

// CheckMetadataValue reports whether the metadata record satisfies the
// predicate.
func CheckMetadataValue(md *decode.Metadata, v MetadataValue) bool {
	switch v.Kind {
	case KindName:
		return trimPadding(md.Data.Name) == v.Text
	case KindSymbol:
		return trimPadding(md.Data.Symbol) == v.Text
	case KindURI:
		return trimPadding(md.Data.URI) == v.Text
	case KindSellerFeeBasisPoints:
		return md.Data.SellerFeeBasisPoints == v.Number
	case KindCreators:
		if md.Data.Creators == nil || len(*md.Data.Creators) != len(v.Creators) {
			return false
		}
		for i, want := range v.Creators {
			got := (*md.Data.Creators)[i]
			if !got.Address.Equals(want.Address) || got.Verified != want.Verified || got.Share != want.Share {
				return false
			}
		}
		return true
	case KindUpdateAuthority:
		return md.UpdateAuthority.Equals(v.Address)
	case KindPrimarySaleHappened:
		return md.PrimarySaleHappened == v.Flag
	case KindIsMutable:
		return md.IsMutable == v.Flag
	case KindTokenStandard:
		return md.TokenStandard != nil && *md.TokenStandard == v.Standard
	case KindCollectionParent:
		return md.Collection != nil && md.Collection.Key.Equals(v.Address)
	case KindCollectionVerified:
		return md.Collection != nil && md.Collection.Verified == v.Flag
	case KindRuleSet:
		ruleSet := md.RuleSet()
		return ruleSet != nil && ruleSet.Equals(v.Address)
	}
	return false
}
