package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/edvin/customer-api/internal/api/request"
	"github.com/edvin/customer-api/internal/api/response"
	"github.com/edvin/customer-api/internal/core"
	"github.com/edvin/customer-api/internal/model"
)

type Customer struct {
	svc *core.CustomerService
	// checkEmailOnCreate rejects malformed emails before the service sees the
	// request. The service validates email again; keep both until clients no
	// longer depend on this path.
	checkEmailOnCreate bool
}

func NewCustomer(svc *core.CustomerService, checkEmailOnCreate bool) *Customer {
	return &Customer{svc: svc, checkEmailOnCreate: checkEmailOnCreate}
}

// Create godoc
//
//	@Summary		Create a customer
//	@Tags			Customers
//	@Param			body body model.CustomerRequest true "Customer details"
//	@Success		201 {object} model.CustomerView
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		500 {object} response.ErrorResponse
//	@Router			/customers [post]
func (h *Customer) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CustomerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("name", req.Name).Msg("creating customer")

	if h.checkEmailOnCreate {
		if err := core.ValidateRequestEmail(&req); err != nil {
			zerolog.Ctx(r.Context()).Warn().Str("email", req.Email).Msg("invalid email format received")
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	view, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, view)
}

// Get godoc
//
//	@Summary		Get a customer
//	@Tags			Customers
//	@Param			id path string true "Customer ID"
//	@Success		200 {object} model.CustomerView
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/customers/{id} [get]
func (h *Customer) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireCustomerID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, view)
}

// Find godoc
//
//	@Summary		Find a customer by name, email, or both
//	@Tags			Customers
//	@Param			name query string false "Customer name"
//	@Param			email query string false "Customer email"
//	@Success		200 {object} model.CustomerView
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/customers [get]
func (h *Customer) Find(w http.ResponseWriter, r *http.Request) {
	q := request.ParseCustomerQuery(r)

	var (
		view *model.CustomerView
		err  error
	)
	switch {
	case q.HasName && q.HasEmail:
		view, err = h.svc.GetByNameAndEmail(r.Context(), q.Name, q.Email)
	case q.HasName:
		view, err = h.svc.GetByName(r.Context(), q.Name)
	case q.HasEmail:
		view, err = h.svc.GetByEmail(r.Context(), q.Email)
	default:
		zerolog.Ctx(r.Context()).Warn().Msg("no query parameters provided for customer lookup")
		response.WriteError(w, http.StatusBadRequest, "name or email query parameter is required")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, view)
}

// Update godoc
//
//	@Summary		Replace a customer
//	@Tags			Customers
//	@Param			id path string true "Customer ID"
//	@Param			body body model.CustomerRequest true "Customer details"
//	@Success		200 {object} model.CustomerView
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Failure		500 {object} response.ErrorResponse
//	@Router			/customers/{id} [put]
func (h *Customer) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireCustomerID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.CustomerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("customer_id", id).Str("tier", string(view.Tier)).Msg("customer updated successfully")

	response.WriteJSON(w, http.StatusOK, view)
}

// Delete godoc
//
//	@Summary		Delete a customer
//	@Tags			Customers
//	@Param			id path string true "Customer ID"
//	@Success		204
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		500 {object} response.ErrorResponse
//	@Router			/customers/{id} [delete]
func (h *Customer) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireCustomerID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	response.NoContent(w)
}
