package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/hostel-management-api/internal/middleware"
	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/internal/usecase"
)

// WardenHandler serves the warden surface: student and room rosters,
// room assignment, complaints and fee status updates.
type WardenHandler struct {
	registration  usecase.RegistrationUsecase
	authUsecase   usecase.AuthUsecase
	roomUsecase   usecase.RoomUsecase
	studentRepo   repository.StudentRepository
	roomRepo      repository.RoomRepository
	complaintRepo repository.ComplaintRepository
	logger        *zerolog.Logger
}

func NewWardenHandler(
	registration usecase.RegistrationUsecase,
	authUsecase usecase.AuthUsecase,
	roomUsecase usecase.RoomUsecase,
	studentRepo repository.StudentRepository,
	roomRepo repository.RoomRepository,
	complaintRepo repository.ComplaintRepository,
	logger *zerolog.Logger,
) *WardenHandler {
	return &WardenHandler{
		registration:  registration,
		authUsecase:   authUsecase,
		roomUsecase:   roomUsecase,
		studentRepo:   studentRepo,
		roomRepo:      roomRepo,
		complaintRepo: complaintRepo,
		logger:        logger,
	}
}

type registerStaffRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type addStudentRequest struct {
	FullName      string    `json:"fullName"      validate:"required"`
	Email         string    `json:"email"         validate:"required,email"`
	Phone         string    `json:"phone"         validate:"required"`
	Password      string    `json:"password"      validate:"required,min=6"`
	StudentID     string    `json:"studentId"     validate:"required"`
	Course        string    `json:"course"        validate:"required"`
	Year          int       `json:"year"          validate:"required,min=1"`
	GuardianName  string    `json:"guardianName"  validate:"required"`
	GuardianPhone string    `json:"guardianPhone" validate:"required"`
	Address       string    `json:"address"       validate:"required"`
	DateOfBirth   time.Time `json:"dateOfBirth"   validate:"required"`
}

type assignRoomRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	RoomID    string `json:"roomId"    validate:"required"`
}

type updateComplaintRequest struct {
	Status        string  `json:"status" validate:"required,oneof=pending in-progress resolved closed"`
	AdminResponse *string `json:"adminResponse"`
}

type updateFeeStatusRequest struct {
	FeeStatus *string  `json:"feeStatus" validate:"omitempty,oneof=pending partial paid overdue"`
	FeeAmount *float64 `json:"feeAmount" validate:"omitempty,gt=0"`
}

func (h *WardenHandler) Register(w http.ResponseWriter, r *http.Request) {
	registerStaff(w, r, h.registration, model.RoleWarden, "Warden registered successfully")
}

func (h *WardenHandler) Login(w http.ResponseWriter, r *http.Request) {
	login(w, r, h.authUsecase, model.RoleWarden)
}

func (h *WardenHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentRepo.ListStudents(r.Context(), repository.FilterStudentsParams{})
	if err != nil {
		respondError(w, err)
		return
	}

	for _, student := range students {
		student.Account = student.Account.Sanitized()
	}

	respondJSON(w, http.StatusOK, map[string]any{"students": students})
}

func (h *WardenHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomRepo.ListRooms(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (h *WardenHandler) AssignRoom(w http.ResponseWriter, r *http.Request) {
	var req assignRoomRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.roomUsecase.AssignRoom(r.Context(), req.StudentID, req.RoomID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Room assigned successfully")
}

func (h *WardenHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.complaintRepo.ListComplaints(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"complaints": complaints})
}

func (h *WardenHandler) UpdateComplaint(w http.ResponseWriter, r *http.Request) {
	var req updateComplaintRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	params := repository.UpdateComplaintParams{
		Status:        &req.Status,
		AdminResponse: req.AdminResponse,
	}
	if req.Status == model.ComplaintStatusResolved {
		now := time.Now()
		params.ResolvedAt = &now
	}
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		params.AssignedTo = &identity.ID
	}

	complaint, err := h.complaintRepo.UpdateComplaint(r.Context(), chi.URLParam(r, "complaintId"), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Complaint updated successfully",
		"complaint": complaint,
	})
}

func (h *WardenHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	var req addStudentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	student, err := h.registration.RegisterStudent(r.Context(), usecase.RegisterStudentParams{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Password:      req.Password,
		StudentID:     req.StudentID,
		Course:        req.Course,
		Year:          req.Year,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		Address:       req.Address,
		DateOfBirth:   req.DateOfBirth,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Student registered successfully",
		"student": student,
	})
}

func (h *WardenHandler) AddRoom(w http.ResponseWriter, r *http.Request) {
	createRoom(w, r, h.roomRepo)
}

func (h *WardenHandler) UpdateStudentFees(w http.ResponseWriter, r *http.Request) {
	var req updateFeeStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	student, err := h.studentRepo.UpdateStudent(r.Context(), chi.URLParam(r, "studentId"), repository.UpdateStudentParams{
		FeeStatus: req.FeeStatus,
		FeeAmount: req.FeeAmount,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	student.Account = student.Account.Sanitized()
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Fee status updated successfully",
		"student": student,
	})
}

// registerStaff is shared by the warden and security registration
// endpoints, which create plain staff accounts.
func registerStaff(
	w http.ResponseWriter,
	r *http.Request,
	registration usecase.RegistrationUsecase,
	role model.Role,
	message string,
) {
	var req registerStaffRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := registration.RegisterStaff(r.Context(), role, usecase.RegisterStaffParams{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": message,
		"user":    account,
	})
}
