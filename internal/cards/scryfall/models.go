package scryfall

import (
	"fmt"
	"time"

	"github.com/hamdrew/solomon-draft/internal/cards"
)

// Card represents a card object as returned by the catalog API.
type Card struct {
	ID            string     `json:"id"`
	OracleID      string     `json:"oracle_id"`
	Name          string     `json:"name"`
	Lang          string     `json:"lang,omitempty"`
	Layout        string     `json:"layout,omitempty"`
	ImageURIs     *ImageURIs `json:"image_uris,omitempty"`
	ManaCost      string     `json:"mana_cost,omitempty"`
	CMC           float64    `json:"cmc"`
	TypeLine      string     `json:"type_line"`
	OracleText    string     `json:"oracle_text,omitempty"`
	Colors        []string   `json:"colors,omitempty"`
	ColorIdentity []string   `json:"color_identity"`

	SetCode         string `json:"set"`
	SetName         string `json:"set_name,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
	Rarity          string `json:"rarity,omitempty"`

	// Card faces (for DFCs, MDFCs, split cards)
	CardFaces []CardFace `json:"card_faces,omitempty"`
}

// CardFace represents one face of a multi-faced card.
type CardFace struct {
	Name       string     `json:"name"`
	ManaCost   string     `json:"mana_cost,omitempty"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text,omitempty"`
	Colors     []string   `json:"colors,omitempty"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains URLs for card images in various sizes.
type ImageURIs struct {
	Small      string `json:"small"`
	Normal     string `json:"normal"`
	Large      string `json:"large"`
	PNG        string `json:"png"`
	ArtCrop    string `json:"art_crop"`
	BorderCrop string `json:"border_crop"`
}

// ToCard converts the wire representation to the internal card model.
func (sc *Card) ToCard() cards.Card {
	card := cards.Card{
		ID:              sc.ID,
		OracleID:        sc.OracleID,
		Name:            sc.Name,
		TypeLine:        sc.TypeLine,
		SetCode:         sc.SetCode,
		ManaCost:        sc.ManaCost,
		CMC:             sc.CMC,
		ColorIdentity:   sc.ColorIdentity,
		Rarity:          sc.Rarity,
		CollectorNumber: sc.CollectorNumber,
		LastUpdated:     time.Now().UTC(),
	}

	if sc.ImageURIs != nil && sc.ImageURIs.Normal != "" {
		card.ImageURI = sc.ImageURIs.Normal
	} else if len(sc.CardFaces) > 0 && sc.CardFaces[0].ImageURIs != nil {
		// Multi-faced cards keep their images on the faces.
		card.ImageURI = sc.CardFaces[0].ImageURIs.Normal
	}

	return card
}

// NotFoundError indicates the catalog has no card for the request.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.URL)
}

// APIError is a structured error response from the catalog.
type APIError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API error (%d %s): %s", e.Status, e.Code, e.Details)
}
