// Package rarity classifies brainrots into rarity tiers.
//
// Ranked tiers, most common first: Common, Rare, Epic, Legendary, Mythic,
// Brainrot God, Secret. OG marks original or seasonal items and sits
// outside the order.
//
// A numeric win rate maps through a fixed descending ladder (FromWinRate).
// Without one, free text is matched against keyword patterns, most
// exclusive tier first (FromText). Classify combines both and never
// returns an empty tier.
package rarity
