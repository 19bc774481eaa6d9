package decode

import (
	"context"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
	"github.com/vmihailenco/msgpack/v5"
)

const ruleSetHeaderLen = 9

// ruleSetHeader sits at the front of every rule set account and points
// at the revision map appended after the last revision.
type ruleSetHeader struct {
	Key            uint8
	RevMapLocation uint64
}

// ruleSetRevisionMap lists the byte offset of every stored revision.
type ruleSetRevisionMap struct {
	RuleSetRevisions []uint64
}

// RuleSet is one revision of an authorization rule set. Operations are
// kept opaque; the SDK threads rule sets through instructions, it does
// not evaluate them.
type RuleSet struct {
	_msgpack    struct{} `msgpack:",as_array"`
	LibVersion  uint8
	Owner       [32]uint8
	RuleSetName string
	Operations  msgpack.RawMessage
}

// OwnerKey returns the rule set owner as a public key.
func (r *RuleSet) OwnerKey() solana.PublicKey {
	return solana.PublicKeyFromBytes(r.Owner[:])
}

func sliceBounds(data []byte, start, end uint64) ([]byte, error) {
	if start > math.MaxInt32 || end > math.MaxInt32 {
		return nil, fmt.Errorf("%w: revision offsets %d..%d", ErrNumericalOverflow, start, end)
	}
	if start >= end || end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: revision offsets %d..%d out of %d bytes", ErrDecodeFailed, start, end, len(data))
	}
	return data[start:end], nil
}

// GetRuleSet fetches the rule set at account and decodes the requested
// revision. A nil revision selects the latest one.
func GetRuleSet(ctx context.Context, fetcher AccountFetcher, account solana.PublicKey, revision *uint64) (*RuleSet, error) {
	data, err := AccountData(ctx, fetcher, account)
	if err != nil {
		return nil, err
	}
	if len(data) < ruleSetHeaderLen {
		return nil, fmt.Errorf("%w: rule set %s shorter than its header", ErrDecodeFailed, account)
	}

	var header ruleSetHeader
	if err := borsh.Deserialize(&header, data[:ruleSetHeaderLen]); err != nil {
		return nil, fmt.Errorf("%w: rule set header %s: %v", ErrDecodeFailed, account, err)
	}
	mapStart := header.RevMapLocation
	if mapStart > math.MaxInt32 || mapStart+1 >= uint64(len(data)) {
		return nil, fmt.Errorf("%w: revision map location %d out of %d bytes", ErrDecodeFailed, mapStart, len(data))
	}
	if version := data[mapStart]; version != 1 {
		return nil, fmt.Errorf("%w: unsupported revision map version %d", ErrDecodeFailed, version)
	}

	var revMap ruleSetRevisionMap
	if err := borsh.Deserialize(&revMap, data[mapStart+1:]); err != nil {
		return nil, fmt.Errorf("%w: revision map of %s: %v", ErrDecodeFailed, account, err)
	}
	if len(revMap.RuleSetRevisions) == 0 {
		return nil, fmt.Errorf("%w: rule set %s holds no revisions", ErrRuleSetRevisionUnavailable, account)
	}

	index := uint64(len(revMap.RuleSetRevisions) - 1)
	if revision != nil {
		index = *revision
	}
	if index >= uint64(len(revMap.RuleSetRevisions)) {
		return nil, fmt.Errorf("%w: revision %d of %d", ErrRuleSetRevisionUnavailable, index, len(revMap.RuleSetRevisions))
	}

	start := revMap.RuleSetRevisions[index]
	end := mapStart
	if index+1 < uint64(len(revMap.RuleSetRevisions)) {
		end = revMap.RuleSetRevisions[index+1]
	}
	body, err := sliceBounds(data, start, end)
	if err != nil {
		return nil, err
	}

	var rs RuleSet
	if err := msgpack.Unmarshal(body, &rs); err != nil {
		return nil, fmt.Errorf("%w: rule set revision %d of %s: %v", ErrDecodeFailed, index, account, err)
	}
	return &rs, nil
}
