package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// customerAPIURL is the base URL for the customer API.
// Override with CUSTOMER_API_URL env var.
var customerAPIURL = "http://localhost:8080/api/v1"

var httpClient = &http.Client{Timeout: 15 * time.Second}

func TestMain(m *testing.M) {
	if os.Getenv("CUSTOMER_E2E") == "" {
		fmt.Println("Skipping e2e tests (set CUSTOMER_E2E=1 to run)")
		os.Exit(0)
	}
	if u := os.Getenv("CUSTOMER_API_URL"); u != "" {
		customerAPIURL = u
	}
	os.Exit(m.Run())
}

func httpDo(t *testing.T, method, url string, body any) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func httpPost(t *testing.T, url string, body any) (*http.Response, string) {
	return httpDo(t, http.MethodPost, url, body)
}

func httpPut(t *testing.T, url string, body any) (*http.Response, string) {
	return httpDo(t, http.MethodPut, url, body)
}

func httpGet(t *testing.T, url string) (*http.Response, string) {
	return httpDo(t, http.MethodGet, url, nil)
}

func httpDelete(t *testing.T, url string) (*http.Response, string) {
	return httpDo(t, http.MethodDelete, url, nil)
}

func parseJSON(t *testing.T, body string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m), "body: %s", body)
	return m
}

// uniqueEmail keeps test runs against a shared database from colliding.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@e2e.example.com", prefix, uuid.NewString()[:8])
}

// daysAgo formats the date n days before today in the server's zone, assuming
// the server runs in UTC or close to it.
func daysAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -n).Format("2006-01-02")
}

func createTestCustomer(t *testing.T, name, email, spend string, lastPurchase string) map[string]any {
	t.Helper()
	resp, body := httpPost(t, customerAPIURL+"/customers", map[string]any{
		"name":               name,
		"email":              email,
		"annual_spend":       spend,
		"last_purchase_date": lastPurchase,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create customer: %s", body)
	c := parseJSON(t, body)
	id, _ := c["id"].(string)
	require.NotEmpty(t, id)
	t.Cleanup(func() {
		httpDelete(t, customerAPIURL+"/customers/"+id)
	})
	return c
}
