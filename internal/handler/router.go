package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vasapolrittideah/hostel-management-api/internal/middleware"
	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

// RouterConfig collects the handlers and middleware the router mounts.
type RouterConfig struct {
	Authenticator *middleware.Authenticator
	Auth          *AuthHandler
	PasswordReset *PasswordResetHandler
	Admin         *AdminHandler
	Warden        *WardenHandler
	Security      *SecurityHandler
	Student       *StudentHandler
	Room          *RoomHandler
}

// NewRouter builds the full route tree. Registration and login stay
// public per role prefix; everything else requires a token, and the
// role sets mirror who may act on each surface.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authenticate := cfg.Authenticator.Authenticate

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/check-user", cfg.Auth.CheckUser)
			r.Post("/request-otp", cfg.Auth.RequestOTP)
			r.Post("/verify-otp", cfg.Auth.VerifyOTP)
		})

		r.Route("/password-reset", func(r chi.Router) {
			r.Post("/request-otp", cfg.PasswordReset.RequestOTP)
			r.Post("/verify-otp", cfg.PasswordReset.VerifyOTP)
			r.Post("/verify-otp-and-reset", cfg.PasswordReset.VerifyAndReset)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireRoles(model.RoleAdmin))
				r.Get("/history", cfg.PasswordReset.History)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/register", cfg.Admin.Register)
			r.Post("/login", cfg.Admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireRoles(model.RoleAdmin))
				r.Get("/dashboard", cfg.Admin.Dashboard)
				r.Get("/admins", cfg.Admin.ListAdmins)
				r.Put("/admins/{adminId}", cfg.Admin.UpdateAdmin)
				r.Delete("/admins/{adminId}", cfg.Admin.DeleteAdmin)
				r.Get("/staff", cfg.Admin.GetStaff)
			})
		})

		r.Route("/warden", func(r chi.Router) {
			r.Post("/register", cfg.Warden.Register)
			r.Post("/login", cfg.Warden.Login)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireRoles(model.RoleWarden, model.RoleAdmin))
				r.Get("/students", cfg.Warden.ListStudents)
				r.Post("/students", cfg.Warden.AddStudent)
				r.Get("/rooms", cfg.Warden.ListRooms)
				r.Post("/rooms", cfg.Warden.AddRoom)
				r.Post("/assign-room", cfg.Warden.AssignRoom)
				r.Get("/complaints", cfg.Warden.ListComplaints)
				r.Put("/complaints/{complaintId}", cfg.Warden.UpdateComplaint)
				r.Put("/students/{studentId}/fees", cfg.Warden.UpdateStudentFees)
			})
		})

		r.Route("/security", func(r chi.Router) {
			r.Post("/register", cfg.Security.Register)
			r.Post("/login", cfg.Security.Login)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireRoles(model.RoleSecurity, model.RoleAdmin))
				r.Post("/visitors/check-in", cfg.Security.CheckInVisitor)
				r.Put("/visitors/{visitorId}/check-out", cfg.Security.CheckOutVisitor)
				r.Get("/visitors", cfg.Security.ListVisitors)
				r.Get("/students/search", cfg.Security.SearchStudent)
			})
		})

		r.Route("/student", func(r chi.Router) {
			r.Post("/register", cfg.Student.Register)
			r.Post("/login", cfg.Student.Login)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireRoles(model.RoleStudent))
				r.Get("/profile", cfg.Student.Profile)
				r.Post("/complaints", cfg.Student.SubmitComplaint)
				r.Get("/complaints", cfg.Student.MyComplaints)
				r.Get("/visitors", cfg.Student.MyVisitors)
				r.Get("/fees", cfg.Student.MyFees)
				r.Post("/fees/pay", cfg.Student.PayFees)
			})
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/", cfg.Room.List)
				r.Get("/available", cfg.Room.Available)
				r.Get("/{roomId}", cfg.Room.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireRoles(model.RoleWarden, model.RoleAdmin))
				r.Post("/", cfg.Room.Create)
				r.Put("/{roomId}", cfg.Room.Update)
			})
		})
	})

	return r
}
