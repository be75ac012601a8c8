package api

import (
	"context"
	"net/http"
	"net/url"
)

// Endpoints describes the routes and envelope keys of one REST collection.
type Endpoints struct {
	Path      string
	ListKey   string
	GetKey    string
	CreateKey string
	UpdateKey string
}

// Resource is the typed list/get/create/update/delete surface of one collection.
// T is the canonical entity and D the submitted draft.
type Resource[T any, D any] struct {
	client    *Client
	endpoints Endpoints
	encode    func(D) (Body, error)
}

// NewResource binds endpoints to a client. A nil encode sends drafts as JSON.
func NewResource[T any, D any](client *Client, endpoints Endpoints, encode func(D) (Body, error)) *Resource[T, D] {
	if encode == nil {
		encode = func(d D) (Body, error) { return JSON(d), nil }
	}
	return &Resource[T, D]{
		client:    client,
		endpoints: endpoints,
		encode:    encode,
	}
}

// List fetches the whole collection in server order.
func (r *Resource[T, D]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.Do(ctx, http.MethodGet, r.endpoints.Path, nil, r.endpoints.ListKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one entity.
func (r *Resource[T, D]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := r.client.Do(ctx, http.MethodGet, r.item(id), nil, r.endpoints.GetKey, &item)
	return item, err
}

// Create submits a draft and returns the server's echo.
func (r *Resource[T, D]) Create(ctx context.Context, draft D) (T, error) {
	var item T
	body, err := r.encode(draft)
	if err != nil {
		return item, &Error{Message: err.Error()}
	}
	err = r.client.Do(ctx, http.MethodPost, r.endpoints.Path, body, r.endpoints.CreateKey, &item)
	return item, err
}

// Update submits a draft for an existing entity and returns the new canonical entity.
func (r *Resource[T, D]) Update(ctx context.Context, id string, draft D) (T, error) {
	var item T
	body, err := r.encode(draft)
	if err != nil {
		return item, &Error{Message: err.Error()}
	}
	err = r.client.Do(ctx, http.MethodPut, r.item(id), body, r.endpoints.UpdateKey, &item)
	return item, err
}

// Delete removes an entity.
func (r *Resource[T, D]) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, r.item(id), nil, Root, nil)
}

func (r *Resource[T, D]) item(id string) string {
	return r.endpoints.Path + "/" + url.PathEscape(id)
}
