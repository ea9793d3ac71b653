// Package cards defines the card metadata model shared by the catalog
// client, the local cache, and the draft core.
package cards

import "time"

// Card represents metadata about a Magic card as resolved by the catalog.
type Card struct {
	// Catalog identifiers
	ID       string `json:"id"`
	OracleID string `json:"oracle_id,omitempty"`

	// Basic card information
	Name     string `json:"name"`
	TypeLine string `json:"type_line,omitempty"`
	SetCode  string `json:"set,omitempty"`

	// Mana information
	ManaCost string  `json:"mana_cost,omitempty"`
	CMC      float64 `json:"cmc,omitempty"`

	// ColorIdentity is the set of colors (subset of W, U, B, R, G) that
	// determines which bucket the card files under in a seat's collection.
	ColorIdentity []string `json:"color_identity"`

	Rarity          string `json:"rarity,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
	ImageURI        string `json:"image_uri,omitempty"`

	// LastUpdated records when the metadata was last refreshed from the
	// catalog. Zero for cards that never touched the cache.
	LastUpdated time.Time `json:"-"`
}
