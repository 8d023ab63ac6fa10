package e2e

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCustomerLifecycle walks a customer through
// create -> get -> find -> update -> delete -> verify gone.
func TestCustomerLifecycle(t *testing.T) {
	email := uniqueEmail("lifecycle")

	// Step 1: Create a Platinum customer.
	c := createTestCustomer(t, "E2E Lifecycle", email, "15000.00", daysAgo(10))
	id := c["id"].(string)
	require.Equal(t, "Platinum", c["tier"])
	t.Logf("created customer: %s", id)

	// Step 2: Read it back.
	resp, body := httpGet(t, customerAPIURL+"/customers/"+id)
	require.Equal(t, http.StatusOK, resp.StatusCode, "get customer: %s", body)
	require.Equal(t, email, parseJSON(t, body)["email"])

	// Step 3: Find it by email and by name plus email.
	resp, body = httpGet(t, customerAPIURL+"/customers?email="+url.QueryEscape(email))
	require.Equal(t, http.StatusOK, resp.StatusCode, "find by email: %s", body)
	require.Equal(t, id, parseJSON(t, body)["id"])

	resp, body = httpGet(t, customerAPIURL+"/customers?name="+url.QueryEscape("E2E Lifecycle")+"&email="+url.QueryEscape(email))
	require.Equal(t, http.StatusOK, resp.StatusCode, "find by name and email: %s", body)

	// Step 4: Drop the spend; tier follows.
	resp, body = httpPut(t, customerAPIURL+"/customers/"+id, map[string]any{
		"name":               "E2E Lifecycle",
		"email":              email,
		"annual_spend":       "2500",
		"last_purchase_date": daysAgo(10),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "update customer: %s", body)
	require.Equal(t, "Gold", parseJSON(t, body)["tier"])
	t.Logf("customer updated to Gold")

	// Step 5: Delete and verify gone.
	resp, body = httpDelete(t, customerAPIURL+"/customers/"+id)
	require.Equal(t, http.StatusNoContent, resp.StatusCode, "delete customer: %s", body)

	resp, _ = httpGet(t, customerAPIURL+"/customers/"+id)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	t.Logf("customer deleted")
}
