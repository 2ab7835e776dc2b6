package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/hostel-management-api/internal/middleware"
	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/internal/usecase"
)

// SecurityHandler serves the gate surface: visitor check-in/out and
// student lookups.
type SecurityHandler struct {
	registration   usecase.RegistrationUsecase
	authUsecase    usecase.AuthUsecase
	visitorUsecase usecase.VisitorUsecase
	visitorRepo    repository.VisitorRepository
	studentRepo    repository.StudentRepository
	logger         *zerolog.Logger
}

func NewSecurityHandler(
	registration usecase.RegistrationUsecase,
	authUsecase usecase.AuthUsecase,
	visitorUsecase usecase.VisitorUsecase,
	visitorRepo repository.VisitorRepository,
	studentRepo repository.StudentRepository,
	logger *zerolog.Logger,
) *SecurityHandler {
	return &SecurityHandler{
		registration:   registration,
		authUsecase:    authUsecase,
		visitorUsecase: visitorUsecase,
		visitorRepo:    visitorRepo,
		studentRepo:    studentRepo,
		logger:         logger,
	}
}

type checkInVisitorRequest struct {
	VisitorName  string `json:"visitorName"  validate:"required"`
	VisitorPhone string `json:"visitorPhone" validate:"required"`
	StudentID    string `json:"studentId"    validate:"required"`
	Purpose      string `json:"purpose"      validate:"required"`
}

func (h *SecurityHandler) Register(w http.ResponseWriter, r *http.Request) {
	registerStaff(w, r, h.registration, model.RoleSecurity, "Security registered successfully")
}

func (h *SecurityHandler) Login(w http.ResponseWriter, r *http.Request) {
	login(w, r, h.authUsecase, model.RoleSecurity)
}

func (h *SecurityHandler) CheckInVisitor(w http.ResponseWriter, r *http.Request) {
	var req checkInVisitorRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	visitor, err := h.visitorUsecase.CheckIn(r.Context(), usecase.CheckInParams{
		VisitorName:  req.VisitorName,
		VisitorPhone: req.VisitorPhone,
		StudentID:    req.StudentID,
		Purpose:      req.Purpose,
		ApprovedBy:   identity.ID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Visitor checked in successfully",
		"visitor": visitor,
	})
}

func (h *SecurityHandler) CheckOutVisitor(w http.ResponseWriter, r *http.Request) {
	visitor, err := h.visitorUsecase.CheckOut(r.Context(), chi.URLParam(r, "visitorId"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Visitor checked out successfully",
		"visitor": visitor,
	})
}

func (h *SecurityHandler) ListVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.visitorRepo.ListVisitors(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"visitors": visitors})
}

// SearchStudent looks a student up by student id or email, for
// verifying a visitor's host at the gate.
func (h *SecurityHandler) SearchStudent(w http.ResponseWriter, r *http.Request) {
	params := repository.FilterStudentsParams{Limit: 10}
	if studentID := r.URL.Query().Get("studentId"); studentID != "" {
		params.StudentID = &studentID
	}
	if email := r.URL.Query().Get("email"); email != "" {
		params.Email = &email
	}

	if params.StudentID == nil && params.Email == nil {
		respondMessage(w, http.StatusBadRequest, "studentId or email query parameter is required")
		return
	}

	students, err := h.studentRepo.ListStudents(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	for _, student := range students {
		student.Account = student.Account.Sanitized()
	}

	respondJSON(w, http.StatusOK, map[string]any{"students": students})
}
