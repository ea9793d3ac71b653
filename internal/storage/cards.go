package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hamdrew/solomon-draft/internal/cards"
)

// SaveCard stores or updates a card in the cache, keyed by name.
func (db *DB) SaveCard(ctx context.Context, card *cards.Card) error {
	if card == nil {
		return fmt.Errorf("card cannot be nil")
	}

	identity, err := json.Marshal(card.ColorIdentity)
	if err != nil {
		return fmt.Errorf("failed to marshal color identity: %w", err)
	}

	query := `
		INSERT INTO cards (name, id, oracle_id, type_line, set_code, mana_cost, cmc, color_identity, rarity, collector_number, image_uri, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			oracle_id = excluded.oracle_id,
			type_line = excluded.type_line,
			set_code = excluded.set_code,
			mana_cost = excluded.mana_cost,
			cmc = excluded.cmc,
			color_identity = excluded.color_identity,
			rarity = excluded.rarity,
			collector_number = excluded.collector_number,
			image_uri = excluded.image_uri,
			last_updated = CURRENT_TIMESTAMP
	`

	_, err = db.conn.ExecContext(ctx, query,
		card.Name,
		card.ID,
		card.OracleID,
		card.TypeLine,
		card.SetCode,
		card.ManaCost,
		card.CMC,
		string(identity),
		card.Rarity,
		card.CollectorNumber,
		card.ImageURI,
	)
	if err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}

	return nil
}

// GetCardByName retrieves a cached card by exact name. Returns nil, nil on
// a cache miss.
func (db *DB) GetCardByName(ctx context.Context, name string) (*cards.Card, error) {
	query := `
		SELECT name, id, oracle_id, type_line, set_code, mana_cost, cmc, color_identity, rarity, collector_number, image_uri, last_updated
		FROM cards
		WHERE name = ?
	`

	card, err := scanCard(db.conn.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// GetCardsByNames retrieves cached cards for the given names. Names absent
// from the cache are simply absent from the result map.
func (db *DB) GetCardsByNames(ctx context.Context, names []string) (map[string]cards.Card, error) {
	if len(names) == 0 {
		return map[string]cards.Card{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	query := fmt.Sprintf(`
		SELECT name, id, oracle_id, type_line, set_code, mana_cost, cmc, color_identity, rarity, collector_number, image_uri, last_updated
		FROM cards
		WHERE name IN (%s)
	`, placeholders)

	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]cards.Card)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		result[card.Name] = *card
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return result, nil
}

// CountCards returns the number of cached cards.
func (db *DB) CountCards(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (*cards.Card, error) {
	var card cards.Card
	var identity string
	var lastUpdated time.Time

	err := row.Scan(
		&card.Name,
		&card.ID,
		&card.OracleID,
		&card.TypeLine,
		&card.SetCode,
		&card.ManaCost,
		&card.CMC,
		&identity,
		&card.Rarity,
		&card.CollectorNumber,
		&card.ImageURI,
		&lastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(identity), &card.ColorIdentity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal color identity for %q: %w", card.Name, err)
	}
	card.LastUpdated = lastUpdated

	return &card, nil
}
