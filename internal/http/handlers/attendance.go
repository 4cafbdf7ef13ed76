package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gracepoint-dev/church-admin-be/internal/http/respond"
	"github.com/gracepoint-dev/church-admin-be/internal/models"
	"github.com/gracepoint-dev/church-admin-be/internal/models/dto"
	"github.com/gracepoint-dev/church-admin-be/internal/report"
	"github.com/gracepoint-dev/church-admin-be/internal/storage"
)

// AttendanceHandler owns the secretary-facing attendance endpoints.
type AttendanceHandler struct {
	store storage.AttendanceStore
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(store storage.AttendanceStore) *AttendanceHandler {
	return &AttendanceHandler{store: store}
}

// Register attaches attendance routes behind the secretary guard.
func (h *AttendanceHandler) Register(mux *http.ServeMux, guard Guard) {
	mux.Handle("/attendance", guard(models.RoleSecretary, h.handleList))
	mux.Handle("/attendance/submit", guard(models.RoleSecretary, h.handleSubmit))
	mux.Handle("/attendance/pdf", guard(models.RoleSecretary, h.handlePDF))
}

func (h *AttendanceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	records, err := h.store.ListAttendance(r.Context())
	if err != nil {
		log.Printf("list attendance: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"attendances": records})
}

func (h *AttendanceHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.SubmitAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	// Counts are pointers so an explicit zero passes validation; only an
	// absent field is rejected.
	required := []*int{
		req.Men, req.Women, req.YouthBoys, req.YouthGirls,
		req.ChildrenBoys, req.ChildrenGirls, req.TotalHeadcount,
	}
	if strings.TrimSpace(req.ServiceDate) == "" || anyMissing(required) {
		respond.Error(w, http.StatusBadRequest, "Missing attendance data")
		return
	}

	rec := models.AttendanceRecord{
		ServiceDate:    strings.TrimSpace(req.ServiceDate),
		Men:            *req.Men,
		Women:          *req.Women,
		YouthBoys:      *req.YouthBoys,
		YouthGirls:     *req.YouthGirls,
		ChildrenBoys:   *req.ChildrenBoys,
		ChildrenGirls:  *req.ChildrenGirls,
		NewConverts:    intOrZero(req.NewConverts),
		Youtube:        intOrZero(req.Youtube),
		TotalHeadcount: *req.TotalHeadcount,
	}
	if anyNegative(rec) {
		respond.Error(w, http.StatusBadRequest, "Attendance counts must be non-negative")
		return
	}

	if _, err := h.store.CreateAttendance(r.Context(), rec); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusConflict, "An attendance record for this date already exists.")
			return
		}
		log.Printf("create attendance: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]string{"message": "Attendance recorded successfully!"})
}

func (h *AttendanceHandler) handlePDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	records, err := h.store.ListAttendance(r.Context())
	if err != nil {
		log.Printf("list attendance for pdf: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(records) == 0 {
		respond.Error(w, http.StatusNotFound, "No attendance data to generate a PDF.")
		return
	}

	doc, err := report.Attendance(records)
	if err != nil {
		log.Printf("render attendance pdf: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	writePDF(w, "attendance_records.pdf", doc)
}

func anyMissing(fields []*int) bool {
	for _, f := range fields {
		if f == nil {
			return true
		}
	}
	return false
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func anyNegative(rec models.AttendanceRecord) bool {
	counts := []int{
		rec.Men, rec.Women, rec.YouthBoys, rec.YouthGirls,
		rec.ChildrenBoys, rec.ChildrenGirls, rec.NewConverts,
		rec.Youtube, rec.TotalHeadcount,
	}
	for _, c := range counts {
		if c < 0 {
			return true
		}
	}
	return false
}

func writePDF(w http.ResponseWriter, filename string, doc []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		log.Printf("write pdf %s: %v", filename, err)
	}
}
