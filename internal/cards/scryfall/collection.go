package scryfall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MaxBatchSize is the maximum number of identifiers per batch request
// (the catalog limit is 75).
const MaxBatchSize = 75

// CardIdentifier identifies one card in a /cards/collection request.
type CardIdentifier struct {
	ID   string `json:"id,omitempty"`   // catalog ID
	Name string `json:"name,omitempty"` // exact card name
}

// CollectionRequest is the request body for /cards/collection.
type CollectionRequest struct {
	Identifiers []CardIdentifier `json:"identifiers"`
}

// CollectionResponse is the response from /cards/collection.
type CollectionResponse struct {
	Object   string           `json:"object"`
	NotFound []CardIdentifier `json:"not_found"`
	Data     []Card           `json:"data"`
}

// GetCardsByNames fetches multiple cards by their exact names using the
// batch /cards/collection endpoint. Batching beyond 75 identifiers is
// handled automatically. Returns the cards found plus the names the
// catalog did not recognize.
func (c *Client) GetCardsByNames(ctx context.Context, names []string) ([]Card, []string, error) {
	identifiers := make([]CardIdentifier, len(names))
	for i, name := range names {
		identifiers[i] = CardIdentifier{Name: name}
	}

	found, notFound, err := c.getCollection(ctx, identifiers)
	if err != nil {
		return nil, nil, err
	}

	missing := make([]string, 0, len(notFound))
	for _, id := range notFound {
		missing = append(missing, id.Name)
	}
	return found, missing, nil
}

// GetCardsByIDs fetches multiple cards by their catalog IDs using the
// batch /cards/collection endpoint.
func (c *Client) GetCardsByIDs(ctx context.Context, ids []string) ([]Card, []string, error) {
	identifiers := make([]CardIdentifier, len(ids))
	for i, id := range ids {
		identifiers[i] = CardIdentifier{ID: id}
	}

	found, notFound, err := c.getCollection(ctx, identifiers)
	if err != nil {
		return nil, nil, err
	}

	missing := make([]string, 0, len(notFound))
	for _, id := range notFound {
		missing = append(missing, id.ID)
	}
	return found, missing, nil
}

// getCollection splits identifiers into batches and fetches each one.
func (c *Client) getCollection(ctx context.Context, identifiers []CardIdentifier) ([]Card, []CardIdentifier, error) {
	if len(identifiers) == 0 {
		return []Card{}, nil, nil
	}

	var allCards []Card
	var allNotFound []CardIdentifier

	for i := 0; i < len(identifiers); i += MaxBatchSize {
		end := i + MaxBatchSize
		if end > len(identifiers) {
			end = len(identifiers)
		}

		resp, err := c.doCollectionRequest(ctx, identifiers[i:end])
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch batch %d-%d: %w", i, end, err)
		}
		allCards = append(allCards, resp.Data...)
		allNotFound = append(allNotFound, resp.NotFound...)
	}

	return allCards, allNotFound, nil
}

// doCollectionRequest performs a POST to /cards/collection with the same
// rate limiting and Retry-After handling as GET requests. The same batch
// is retried after a throttling response.
func (c *Client) doCollectionRequest(ctx context.Context, identifiers []CardIdentifier) (*CollectionResponse, error) {
	body, err := json.Marshal(CollectionRequest{Identifiers: identifiers})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/cards/collection"
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to fetch collection: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return nil, lastErr
		}

		var collectionResp CollectionResponse
		done, err := c.handleResponse(resp, url, &collectionResp, &backoff)
		if done {
			if err != nil {
				return nil, err
			}
			return &collectionResp, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
