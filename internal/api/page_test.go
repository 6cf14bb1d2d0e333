// ABOUTME: Tests for pagination envelope decoding
// ABOUTME: Covers the envelope shape and bare-array normalization

package api

import "testing"

func TestDecodePage_Envelope(t *testing.T) {
	data := []byte(`{
		"content": [{"id": 1, "name": "Books"}, {"id": 2, "name": "Games"}],
		"totalElements": 25,
		"totalPages": 3,
		"number": 2
	}`)

	page, err := decodePage[Category](data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Content) != 2 {
		t.Errorf("expected 2 records, got %d", len(page.Content))
	}
	if page.TotalElements != 25 || page.TotalPages != 3 || page.Number != 2 {
		t.Errorf("unexpected pagination metadata: %+v", page)
	}
}

func TestDecodePage_BareArrayWrapsSinglePage(t *testing.T) {
	data := []byte(`[{"id": 1, "name": "Books"}, {"id": 2, "name": "Games"}]`)

	page, err := decodePage[Category](data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Content) != 2 {
		t.Errorf("expected 2 records, got %d", len(page.Content))
	}
	if page.TotalPages != 1 {
		t.Errorf("expected totalPages 1 for bare array, got %d", page.TotalPages)
	}
	if page.TotalElements != 2 {
		t.Errorf("expected totalElements 2, got %d", page.TotalElements)
	}
	if page.Number != 0 {
		t.Errorf("expected page number 0, got %d", page.Number)
	}
}

func TestDecodePage_EmptyBody(t *testing.T) {
	page, err := decodePage[Product](nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Content) != 0 {
		t.Errorf("expected empty content, got %d records", len(page.Content))
	}
}

func TestDecodePage_NullContentNormalized(t *testing.T) {
	page, err := decodePage[Product]([]byte(`{"content": null, "totalElements": 0, "totalPages": 0, "number": 0}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Content == nil {
		t.Error("expected non-nil content slice")
	}
}

func TestDecodePage_InvalidJSON(t *testing.T) {
	if _, err := decodePage[Category]([]byte(`{broken`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := decodePage[Category]([]byte(`[{broken`)); err == nil {
		t.Error("expected error for invalid JSON array")
	}
}
