package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/service"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/response"
)

type DividendHandler struct {
	service   *service.DividendService
	validator *validator.Validate
}

func NewDividendHandler(service *service.DividendService) *DividendHandler {
	return &DividendHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Settle triggers the quarterly dividend settlement.
func (h *DividendHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var request domain.SettleDividendsRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.service.Settle(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *DividendHandler) List(w http.ResponseWriter, r *http.Request) {
	dividends, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, dividends)
}
