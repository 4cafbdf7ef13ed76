package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gracepoint-dev/church-admin-be/internal/http/respond"
	"github.com/gracepoint-dev/church-admin-be/internal/models"
	"github.com/gracepoint-dev/church-admin-be/internal/models/dto"
	"github.com/gracepoint-dev/church-admin-be/internal/report"
	"github.com/gracepoint-dev/church-admin-be/internal/storage"
)

// PaymentsHandler owns the accountant-facing payment endpoints, including
// the static account-details listing.
type PaymentsHandler struct {
	store    storage.PaymentStore
	accounts []models.BankAccount
}

// NewPaymentsHandler constructs the handler. accounts is the configured set
// of receiving bank accounts.
func NewPaymentsHandler(store storage.PaymentStore, accounts []models.BankAccount) *PaymentsHandler {
	return &PaymentsHandler{store: store, accounts: accounts}
}

// Register attaches payment routes behind the accountant guard.
func (h *PaymentsHandler) Register(mux *http.ServeMux, guard Guard) {
	mux.Handle("/payments", guard(models.RoleAccountant, h.handlePayments))
	mux.Handle("/payments/pdf", guard(models.RoleAccountant, h.handlePDF))
	mux.Handle("/account-details", guard(models.RoleAccountant, h.handleAccountDetails))
}

func (h *PaymentsHandler) handlePayments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleRecord(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PaymentsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListPayments(r.Context())
	if err != nil {
		log.Printf("list payments: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"payments": records})
}

func (h *PaymentsHandler) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.PaymentType) == "" || req.Amount == nil {
		respond.Error(w, http.StatusBadRequest, "Missing payment data")
		return
	}

	rec := models.PaymentRecord{
		Date:            strings.TrimSpace(req.Date),
		PaymentType:     strings.TrimSpace(req.PaymentType),
		Amount:          *req.Amount,
		Description:     req.Description,
		AccountDetails:  req.AccountDetails,
		ReceiptData:     req.ReceiptData,
		ReceiptFilename: req.ReceiptFilename,
	}
	created, err := h.store.CreatePayment(r.Context(), rec)
	if err != nil {
		log.Printf("create payment: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Payment recorded successfully!",
		"payment": created,
	})
}

func (h *PaymentsHandler) handlePDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	records, err := h.store.ListPayments(r.Context())
	if err != nil {
		log.Printf("list payments for pdf: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(records) == 0 {
		respond.Error(w, http.StatusNotFound, "No payments data to generate a PDF.")
		return
	}

	doc, err := report.Payments(records)
	if err != nil {
		log.Printf("render payments pdf: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	writePDF(w, "payment_records.pdf", doc)
}

func (h *PaymentsHandler) handleAccountDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"accounts": h.accounts})
}
