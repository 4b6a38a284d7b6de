package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CollectionClient scopes the client to one collection endpoint, e.g.
// "projects" or "contact-links".
type CollectionClient struct {
	client   *Client
	endpoint string
}

// Collection returns a client bound to the named collection endpoint.
func (c *Client) Collection(endpoint string) *CollectionClient {
	return &CollectionClient{client: c, endpoint: endpoint}
}

// Endpoint reports the collection path segment.
func (cc *CollectionClient) Endpoint() string { return cc.endpoint }

func (cc *CollectionClient) base() string {
	return "/" + cc.endpoint
}

func (cc *CollectionClient) item(id string) string {
	return cc.base() + "/" + url.PathEscape(id)
}

// List fetches every entity in the collection, in server order.
func (cc *CollectionClient) List(ctx context.Context) ([]Entity, error) {
	var out []Entity
	if err := cc.client.do(ctx, http.MethodGet, cc.base(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one entity by id.
func (cc *CollectionClient) Get(ctx context.Context, id string) (Entity, error) {
	if id == "" {
		return nil, fmt.Errorf("api: %s: entity id is required", cc.endpoint)
	}
	var out Entity
	if err := cc.client.do(ctx, http.MethodGet, cc.item(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits field values as a new entity and returns the stored record,
// id included.
func (cc *CollectionClient) Create(ctx context.Context, values map[string]any) (Entity, error) {
	var out Entity
	if err := cc.client.do(ctx, http.MethodPost, cc.base(), values, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the fields of an existing entity.
func (cc *CollectionClient) Update(ctx context.Context, id string, values map[string]any) (Entity, error) {
	if id == "" {
		return nil, fmt.Errorf("api: %s: entity id is required", cc.endpoint)
	}
	var out Entity
	if err := cc.client.do(ctx, http.MethodPut, cc.item(id), values, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an entity.
func (cc *CollectionClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("api: %s: entity id is required", cc.endpoint)
	}
	return cc.client.do(ctx, http.MethodDelete, cc.item(id), nil, nil)
}

// Reorder persists a new manual ordering as the full id sequence.
func (cc *CollectionClient) Reorder(ctx context.Context, ids []string) error {
	body := map[string]any{"ids": ids}
	return cc.client.do(ctx, http.MethodPost, cc.base()+"/reorder", body, nil)
}
