package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/localarthub-backend/api/middleware"
	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, string, string) error {
	return errors.New("connection refused")
}

func (brokenStore) Remove(context.Context, string, ...string) error {
	return errors.New("connection refused")
}

func request(method, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
	}
	return req.WithContext(middleware.WithVisitorID(req.Context(), "visitor-1"))
}

func TestStorageImportThenExport(t *testing.T) {
	store := localstore.NewMemoryStore()

	resp := httptest.NewRecorder()
	StorageImport(store, nil).ServeHTTP(resp, request(http.MethodPost,
		`{"entries":{"localArtHubCart":"[{\"name\":\"Vase\",\"price\":500,\"image\":\"v.jpg\",\"quantity\":1}]","appliedCoupon":"SAVE10","discountPercent":"10"}}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	StorageExport(store, nil).ServeHTTP(resp, request(http.MethodGet, ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data snapshot `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Entries[localstore.KeyAppliedCoupon] != "SAVE10" {
		t.Fatalf("unexpected entries: %+v", envelope.Data.Entries)
	}
	if _, ok := envelope.Data.Entries[localstore.KeyContactMessages]; ok {
		t.Fatalf("unwritten keys should be omitted")
	}
}

func TestStorageImportRejectsUnknownKey(t *testing.T) {
	store := localstore.NewMemoryStore()
	resp := httptest.NewRecorder()
	StorageImport(store, nil).ServeHTTP(resp, request(http.MethodPost, `{"entries":{"theme":"dark"}}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestStorageImportRequiresEntries(t *testing.T) {
	resp := httptest.NewRecorder()
	StorageImport(localstore.NewMemoryStore(), nil).ServeHTTP(resp, request(http.MethodPost, `{}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestStorageExportDependencyFailure(t *testing.T) {
	resp := httptest.NewRecorder()
	StorageExport(brokenStore{}, nil).ServeHTTP(resp, request(http.MethodGet, ""))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestStorageRequiresVisitor(t *testing.T) {
	resp := httptest.NewRecorder()
	StorageExport(localstore.NewMemoryStore(), nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
