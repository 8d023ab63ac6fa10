package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/edvin/customer-api/internal/core"
	"github.com/edvin/customer-api/internal/model"
	"github.com/edvin/customer-api/internal/store"
)

const validID = "550e8400-e29b-41d4-a716-446655440000"

// failingStore is a record store whose every call fails.
type failingStore struct{}

var errStoreDown = errors.New("connection refused")

func (failingStore) Create(context.Context, *model.Customer) error { return errStoreDown }
func (failingStore) FindByID(context.Context, string) (*model.Customer, error) {
	return nil, errStoreDown
}
func (failingStore) FindByName(context.Context, string) (*model.Customer, error) {
	return nil, errStoreDown
}
func (failingStore) FindByEmail(context.Context, string) (*model.Customer, error) {
	return nil, errStoreDown
}
func (failingStore) FindByNameAndEmail(context.Context, string, string) (*model.Customer, error) {
	return nil, errStoreDown
}
func (failingStore) Save(context.Context, *model.Customer) error { return errStoreDown }
func (failingStore) DeleteByID(context.Context, string) error { return errStoreDown }

func newCustomerHandler(strict bool) (*Customer, *store.Memory) {
	mem := store.NewMemory()
	return NewCustomer(core.NewCustomerService(mem, time.UTC), strict), mem
}

func daysAgo(n int) string {
	return civil.DateOf(time.Now().UTC()).AddDays(-n).String()
}

func validCustomerBody(name, email string) map[string]any {
	return map[string]any{
		"name":               name,
		"email":              email,
		"annual_spend":       12000,
		"last_purchase_date": daysAgo(60),
	}
}

// createCustomer runs Create and returns the new customer's ID.
func createCustomer(t *testing.T, h *Customer, body map[string]any) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/customers", body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id, _ := decodeBody(rec)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// newRequest builds a request with body encoded as JSON, or no body when nil.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// idRequest targets /customers/{id} with the id already routed.
func idRequest(method, id string, body any) *http.Request {
	return withChiURLParam(newRequest(method, "/customers/"+id, body), "id", id)
}

func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

func decodeBody(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}
