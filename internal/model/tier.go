package model

// Tier is a loyalty classification derived from spend and purchase recency.
type Tier string

const (
	TierPlatinum Tier = "Platinum"
	TierGold     Tier = "Gold"
	TierSilver   Tier = "Silver"
)

// Tiers lists every tier, highest first.
var Tiers = []Tier{TierPlatinum, TierGold, TierSilver}
