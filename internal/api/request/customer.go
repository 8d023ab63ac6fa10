package request

import (
	"net/http"
)

// CustomerQuery holds the lookup parameters of GET /customers. A parameter
// that is present with an empty value still counts as given.
type CustomerQuery struct {
	Name     string
	HasName  bool
	Email    string
	HasEmail bool
}

func ParseCustomerQuery(r *http.Request) CustomerQuery {
	q := r.URL.Query()
	var cq CustomerQuery
	if _, ok := q["name"]; ok {
		cq.Name, cq.HasName = q.Get("name"), true
	}
	if _, ok := q["email"]; ok {
		cq.Email, cq.HasEmail = q.Get("email"), true
	}
	return cq
}
