package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// The backend's response envelopes are inconsistent across endpoints:
// sometimes a bare array, sometimes {"data": [...]}, sometimes
// {"items": [...], "total": n}. Normalization happens once here so resource
// methods always hand callers a canonical slice plus a total count.

// Page is the canonical list result.
type Page[T any] struct {
	Items []T
	Total int
}

// decodeList normalizes the three list envelope shapes. Total falls back to
// len(items) when the envelope does not carry one.
func decodeList[T any](data []byte) (Page[T], error) {
	var page Page[T]

	// Bare array.
	var bare []T
	if err := json.Unmarshal(data, &bare); err == nil {
		page.Items = bare
		page.Total = len(bare)
		return page, nil
	}

	// {"data": [...]} envelope.
	var dataEnv struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(data, &dataEnv); err == nil && dataEnv.Data != nil {
		page.Items = dataEnv.Data
		page.Total = len(dataEnv.Data)
		return page, nil
	}

	// {"items": [...], "total": n} envelope.
	var itemsEnv struct {
		Items []T `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(data, &itemsEnv); err == nil && itemsEnv.Items != nil {
		page.Items = itemsEnv.Items
		page.Total = itemsEnv.Total
		if page.Total == 0 {
			page.Total = len(itemsEnv.Items)
		}
		return page, nil
	}

	return page, fmt.Errorf("unrecognized list envelope: %s", truncate(data, 120))
}

// decodeObject normalizes a single-object response: either the bare object
// or one nested under a data envelope.
func decodeObject[T any](data []byte) (T, error) {
	var zero T

	if len(data) == 0 {
		return zero, nil
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err == nil && len(env.Data) > 0 && env.Data[0] == '{' {
		var out T
		if err := json.Unmarshal(env.Data, &out); err == nil {
			return out, nil
		}
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("unrecognized object envelope: %w", err)
	}
	return out, nil
}

// list fetches path and normalizes the list envelope.
func list[T any](ctx context.Context, c *Client, path string) (Page[T], error) {
	data, err := c.doRaw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return Page[T]{}, err
	}
	return decodeList[T](data)
}

// getObject fetches path and normalizes the object envelope.
func getObject[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T
	data, err := c.doRaw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return zero, err
	}
	return decodeObject[T](data)
}

// postObject posts body to path and normalizes the object envelope.
func postObject[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var zero T
	data, err := c.doRaw(ctx, http.MethodPost, path, body)
	if err != nil {
		return zero, err
	}
	return decodeObject[T](data)
}

// putObject updates path with body and normalizes the object envelope.
func putObject[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var zero T
	data, err := c.doRaw(ctx, http.MethodPut, path, body)
	if err != nil {
		return zero, err
	}
	return decodeObject[T](data)
}

func truncate(data []byte, n int) string {
	s := string(data)
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
