// ABOUTME: Pagination envelope for list and search responses
// ABOUTME: Normalizes bare-array responses into a single-page envelope

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is the backend's pagination envelope
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// decodePage parses a list response body. Some backend endpoints return a
// bare JSON array instead of the Page envelope; those are wrapped as a
// single page.
func decodePage[T any](data []byte) (*Page[T], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Page[T]{Content: []T{}}, nil
	}

	if trimmed[0] == '[' {
		var content []T
		if err := json.Unmarshal(trimmed, &content); err != nil {
			return nil, fmt.Errorf("invalid response from backend: %w", err)
		}
		return &Page[T]{
			Content:       content,
			TotalElements: len(content),
			TotalPages:    1,
			Number:        0,
		}, nil
	}

	var page Page[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	if page.Content == nil {
		page.Content = []T{}
	}
	return &page, nil
}
