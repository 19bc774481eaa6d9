package transaction

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
)

// Priority selects how aggressively a transaction bids for block space.
type Priority uint8

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityMax
)

// MicroLamports returns the compute unit price the priority maps to.
func (p Priority) MicroLamports() uint64 {
	switch p {
	case PriorityLow:
		return 20_000
	case PriorityMedium:
		return 200_000
	case PriorityHigh:
		return 1_000_000
	case PriorityMax:
		return 2_000_000
	default:
		return 20
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityNone:
		return "none"
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityMax:
		return "max"
	}
	return fmt.Sprintf("Priority(%d)", uint8(p))
}

// ParsePriority is the inverse of Priority.String.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "none":
		return PriorityNone, true
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "max":
		return PriorityMax, true
	}
	return PriorityNone, false
}

// PrependComputeBudget puts the compute budget instructions in front of
// the payload. The limit goes first so the price applies to the final
// budget.
func PrependComputeBudget(instructions []solana.Instruction, priority Priority, limit uint32) []solana.Instruction {
	budget := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(limit).Build(),
		computebudget.NewSetComputeUnitPriceInstruction(priority.MicroLamports()).Build(),
	}
	return append(budget, instructions...)
}
