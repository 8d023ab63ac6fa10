package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantEmail  string
		wantAbsent bool
	}{
		{"present", `{"email":"alice@example.com"}`, "alice@example.com", false},
		{"empty", `{"email":""}`, "", false},
		{"null", `{"email":null}`, "", true},
		{"missing", `{"name":"Alice"}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CustomerRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.wantEmail, req.Email)
			assert.Equal(t, tt.wantAbsent, req.EmailAbsent)
		})
	}
}

func TestCustomerRequest_UnmarshalJSON_AllFields(t *testing.T) {
	var req CustomerRequest
	err := json.Unmarshal([]byte(`{
		"name": "Alice",
		"email": "alice@example.com",
		"annual_spend": "1500.50",
		"last_purchase_date": "2024-05-01"
	}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "Alice", req.Name)
	require.NotNil(t, req.AnnualSpend)
	assert.Equal(t, "1500.5", req.AnnualSpend.String())
	require.NotNil(t, req.LastPurchaseDate)
	assert.Equal(t, "2024-05-01", req.LastPurchaseDate.String())
	assert.False(t, req.EmailAbsent)
}

func TestCustomerRequest_UnmarshalJSON_Malformed(t *testing.T) {
	var req CustomerRequest
	assert.Error(t, json.Unmarshal([]byte(`{"email": 42}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"last_purchase_date": "soon"}`), &req))
}

func TestCustomerRequest_MarshalOmitsPresenceFlag(t *testing.T) {
	data, err := json.Marshal(CustomerRequest{Name: "Alice", EmailAbsent: true})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "EmailAbsent")
	assert.Contains(t, string(data), `"email":""`)
}
