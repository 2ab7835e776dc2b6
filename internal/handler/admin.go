package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/internal/usecase"
)

// AdminHandler serves the admin account surface: registration, login
// and administration of admin accounts and staff.
type AdminHandler struct {
	registration usecase.RegistrationUsecase
	authUsecase  usecase.AuthUsecase
	adminRepo    repository.AdminRepository
	staffRepo    repository.StaffRepository
	studentRepo  repository.StudentRepository
	roomRepo     repository.RoomRepository
	logger       *zerolog.Logger
}

func NewAdminHandler(
	registration usecase.RegistrationUsecase,
	authUsecase usecase.AuthUsecase,
	adminRepo repository.AdminRepository,
	staffRepo repository.StaffRepository,
	studentRepo repository.StudentRepository,
	roomRepo repository.RoomRepository,
	logger *zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		registration: registration,
		authUsecase:  authUsecase,
		adminRepo:    adminRepo,
		staffRepo:    staffRepo,
		studentRepo:  studentRepo,
		roomRepo:     roomRepo,
		logger:       logger,
	}
}

type registerAdminRequest struct {
	FullName   string `json:"fullName"   validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Phone      string `json:"phone"      validate:"required"`
	Password   string `json:"password"   validate:"required,min=6"`
	Department string `json:"department"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateAdminRequest struct {
	FullName   *string `json:"fullName"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerAdminRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.registration.RegisterAdmin(r.Context(), usecase.RegisterAdminParams{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		Department: req.Department,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Admin registered successfully",
		"admin":   admin,
	})
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	login(w, r, h.authUsecase, model.RoleAdmin)
}

func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminRepo.ListAdmins(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	for _, admin := range admins {
		admin.Account = admin.Account.Sanitized()
	}

	respondJSON(w, http.StatusOK, map[string]any{"admins": admins})
}

func (h *AdminHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req updateAdminRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.adminRepo.UpdateAdmin(r.Context(), chi.URLParam(r, "adminId"), repository.UpdateAdminParams{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Department: req.Department,
		Status:     req.Status,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	admin.Account = admin.Account.Sanitized()
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Admin updated successfully",
		"admin":   admin,
	})
}

func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	if _, err := h.adminRepo.DeleteAdmin(r.Context(), chi.URLParam(r, "adminId")); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Admin deleted successfully")
}

// GetStaff returns the warden and security directories together.
func (h *AdminHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	wardens, err := h.staffRepo.ListStaff(r.Context(), model.RoleWarden)
	if err != nil {
		respondError(w, err)
		return
	}

	security, err := h.staffRepo.ListStaff(r.Context(), model.RoleSecurity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"wardens":  wardens,
		"security": security,
	})
}

// Dashboard returns occupancy and workload counts for the admin UI.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentRepo.ListStudents(r.Context(), repository.FilterStudentsParams{})
	if err != nil {
		respondError(w, err)
		return
	}

	rooms, err := h.roomRepo.ListRooms(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var occupied, available int
	for _, room := range rooms {
		if room.CurrentOccupancy > 0 {
			occupied++
		}
		if room.Status == model.RoomStatusAvailable && room.CurrentOccupancy < room.Capacity {
			available++
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"totalStudents":  len(students),
		"totalRooms":     len(rooms),
		"occupiedRooms":  occupied,
		"availableRooms": available,
	})
}

// login is the shared direct password login used by the per-role login
// endpoints.
func login(w http.ResponseWriter, r *http.Request, authUsecase usecase.AuthUsecase, role model.Role) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	token, account, err := authUsecase.Login(r.Context(), req.Email, role, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    account,
	})
}
