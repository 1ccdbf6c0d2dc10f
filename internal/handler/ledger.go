package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/service"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/response"
)

// LedgerHandler serves the CRUD surface: members, loans, payments, banks,
// expenses and the cash book.
type LedgerHandler struct {
	service   *service.LedgerService
	validator *validator.Validate
}

func NewLedgerHandler(service *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Members

func (h *LedgerHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateMemberRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	member, err := h.service.CreateMember(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, member)
}

func (h *LedgerHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid member id")
		return
	}

	member, err := h.service.GetMember(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, member)
}

func (h *LedgerHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, members)
}

func (h *LedgerHandler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid member id")
		return
	}

	var request domain.CreateAttendanceRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	attendance, err := h.service.RecordAttendance(r.Context(), memberID, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, attendance)
}

// Loans

func (h *LedgerHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, loan)
}

func (h *LedgerHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid loan id")
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, loan)
}

func (h *LedgerHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	var memberID *uuid.UUID
	if raw := r.URL.Query().Get("memberId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid memberId filter")
			return
		}
		memberID = &id
	}

	loans, err := h.service.ListLoans(r.Context(), memberID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, loans)
}

// Payments

func (h *LedgerHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid loan id")
		return
	}

	var request domain.CreatePaymentRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.service.RecordPayment(r.Context(), loanID, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *LedgerHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid loan id")
		return
	}

	payments, err := h.service.ListPayments(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, payments)
}

// Banks

func (h *LedgerHandler) CreateBank(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateBankRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	bank, err := h.service.CreateBank(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, bank)
}

func (h *LedgerHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.service.ListBanks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, banks)
}

func (h *LedgerHandler) CreateFixedDeposit(w http.ResponseWriter, r *http.Request) {
	bankID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid bank id")
		return
	}

	var request domain.CreateFixedDepositRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	deposit, err := h.service.CreateFixedDeposit(r.Context(), bankID, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, deposit)
}

// Expenses

func (h *LedgerHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var request domain.ExpenseRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	expense, err := h.service.CreateExpense(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, expense)
}

func (h *LedgerHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid expense id")
		return
	}

	expense, err := h.service.GetExpense(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, expense)
}

func (h *LedgerHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := &domain.ExpenseFilter{
		Category: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "invalid startDate filter")
			return
		}
		filter.StartDate = &start
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "invalid endDate filter")
			return
		}
		filter.EndDate = &end
	}

	expenses, err := h.service.ListExpenses(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, expenses)
}

func (h *LedgerHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid expense id")
		return
	}

	var request domain.ExpenseRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	expense, err := h.service.UpdateExpense(r.Context(), id, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, expense)
}

func (h *LedgerHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid expense id")
		return
	}

	if err := h.service.DeleteExpense(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, map[string]bool{"success": true})
}

// Cash book

func (h *LedgerHandler) CreateCashBookEntry(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateCashBookEntryRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	entry, err := h.service.CreateCashBookEntry(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, entry)
}

func (h *LedgerHandler) ListCashBookEntries(w http.ResponseWriter, r *http.Request) {
	var memberID *uuid.UUID
	if raw := r.URL.Query().Get("memberId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid memberId filter")
			return
		}
		memberID = &id
	}

	entries, err := h.service.ListCashBookEntries(r.Context(), memberID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, entries)
}
