package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/hostel-management-api/internal/middleware"
	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/internal/usecase"
)

// StudentHandler serves the student self-service surface. Every
// authenticated endpoint operates on the account from the request
// context, never on an id from the request.
type StudentHandler struct {
	registration  usecase.RegistrationUsecase
	authUsecase   usecase.AuthUsecase
	feeUsecase    usecase.FeeUsecase
	studentRepo   repository.StudentRepository
	roomRepo      repository.RoomRepository
	complaintRepo repository.ComplaintRepository
	visitorRepo   repository.VisitorRepository
	logger        *zerolog.Logger
}

func NewStudentHandler(
	registration usecase.RegistrationUsecase,
	authUsecase usecase.AuthUsecase,
	feeUsecase usecase.FeeUsecase,
	studentRepo repository.StudentRepository,
	roomRepo repository.RoomRepository,
	complaintRepo repository.ComplaintRepository,
	visitorRepo repository.VisitorRepository,
	logger *zerolog.Logger,
) *StudentHandler {
	return &StudentHandler{
		registration:  registration,
		authUsecase:   authUsecase,
		feeUsecase:    feeUsecase,
		studentRepo:   studentRepo,
		roomRepo:      roomRepo,
		complaintRepo: complaintRepo,
		visitorRepo:   visitorRepo,
		logger:        logger,
	}
}

type registerStudentRequest struct {
	FullName      string `json:"fullName"      validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Phone         string `json:"phone"         validate:"required"`
	Password      string `json:"password"      validate:"required,min=6"`
	StudentID     string `json:"studentId"     validate:"required"`
	Course        string `json:"course"        validate:"required"`
	Year          int    `json:"year"          validate:"required,gte=1"`
	GuardianName  string `json:"guardianName"`
	GuardianPhone string `json:"guardianPhone"`
	Address       string `json:"address"`
	DateOfBirth   string `json:"dateOfBirth"`
}

type submitComplaintRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"    validate:"required"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
}

type payFeesRequest struct {
	Amount        float64 `json:"amount"        validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
}

func (h *StudentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerStudentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var dateOfBirth time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "dateOfBirth must be in YYYY-MM-DD format")
			return
		}
		dateOfBirth = parsed
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
		DateOfBirth:   dateOfBirth,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Student registered successfully",
		"user":    student,
	})
}

func (h *StudentHandler) Login(w http.ResponseWriter, r *http.Request) {
	login(w, r, h.authUsecase, model.RoleStudent)
}

func (h *StudentHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	student, err := h.studentRepo.GetStudent(r.Context(), identity.ID.Hex())
	if err != nil {
		respondError(w, err)
		return
	}

	student.Account = student.Account.Sanitized()

	payload := map[string]any{"student": student}
	if student.RoomID != nil {
		if room, err := h.roomRepo.GetRoom(r.Context(), student.RoomID.Hex()); err == nil {
			payload["room"] = room
		}
	}

	respondJSON(w, http.StatusOK, payload)
}

func (h *StudentHandler) SubmitComplaint(w http.ResponseWriter, r *http.Request) {
	var req submitComplaintRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	complaint := &model.Complaint{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		Status:      model.ComplaintStatusPending,
		StudentID:   identity.ID,
	}

	if student, err := h.studentRepo.GetStudent(r.Context(), identity.ID.Hex()); err == nil && student.RoomID != nil {
		if room, err := h.roomRepo.GetRoom(r.Context(), student.RoomID.Hex()); err == nil {
			complaint.RoomNumber = room.RoomNumber
		}
	}

	created, err := h.complaintRepo.CreateComplaint(r.Context(), complaint)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":   "Complaint submitted successfully",
		"complaint": created,
	})
}

func (h *StudentHandler) MyComplaints(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	complaints, err := h.complaintRepo.ListComplaintsByStudent(r.Context(), identity.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"complaints": complaints})
}

func (h *StudentHandler) MyVisitors(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	visitors, err := h.visitorRepo.ListVisitorsByStudent(r.Context(), identity.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"visitors": visitors})
}

func (h *StudentHandler) MyFees(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	summary, err := h.feeUsecase.GetFeeSummary(r.Context(), identity.ID.Hex())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"fees": summary})
}

func (h *StudentHandler) PayFees(w http.ResponseWriter, r *http.Request) {
	var req payFeesRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	payment, err := h.feeUsecase.PayFees(r.Context(), identity.ID.Hex(), usecase.PayFeesParams{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Payment recorded successfully",
		"payment": payment,
	})
}
