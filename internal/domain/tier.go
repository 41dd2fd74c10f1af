package domain

import "strings"

// Tier enumerates subscription tiers, totally ordered free < paid < elite.
type Tier string

const (
	TierFree  Tier = "free"
	TierPaid  Tier = "paid"
	TierElite Tier = "elite"
)

// tierRank maps each tier onto the total order. Unknown tiers are absent and
// rank below free so that a corrupt or future tier value never unlocks
// anything.
var tierRank = map[Tier]int{
	TierFree:  0,
	TierPaid:  1,
	TierElite: 2,
}

// ParseTier normalizes a stored tier string. The boolean reports whether the
// value was one of the known tiers; callers treating unknown values as
// "below free" can rely on Allows doing the same.
func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	_, ok := tierRank[t]
	return t, ok
}

// Rank returns the position of the tier in the total order, or -1 for
// unrecognized values.
func (t Tier) Rank() int {
	if r, ok := tierRank[t]; ok {
		return r
	}
	return -1
}

// Allows reports whether a user holding tier t may use a feature requiring
// the given tier. Pure; deny-by-default for unrecognized user tiers.
func (t Tier) Allows(required Tier) bool {
	return t.Rank() >= 0 && t.Rank() >= required.Rank()
}

// Valid reports whether the tier is one of the known values.
func (t Tier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}
