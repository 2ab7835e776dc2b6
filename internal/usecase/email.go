package usecase

import (
	"fmt"
	"time"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

func otpEmailBody(fullName, code string, validFor time.Duration) string {
	return fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>You have requested to log in to your HMS account. Please use the
		following one-time code to complete your login:</p>

		<h2 style="letter-spacing: 4px;">%s</h2>

		<p>This code is valid for %s and can be used only once.
		Do not share it with anyone.</p>

		<p>If you did not request this login, you can safely ignore this
		email or contact your system administrator.</p>

		<p>Hostel Management System</p>
	`, fullName, code, validFor)
}

func resetEmailBody(fullName, code string, validFor time.Duration) string {
	return fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>We received a request to reset the password for your HMS account.
		Enter the following one-time code to continue:</p>

		<h2 style="letter-spacing: 4px;">%s</h2>

		<p>This code expires in %s. If you did not request a password
		reset, you can safely ignore this email and your account will
		remain secure.</p>

		<p>Hostel Management System</p>
	`, fullName, code, validFor)
}

func credentialsEmailBody(fullName, email, password string, role model.Role) string {
	return fmt.Sprintf(`
		<p>Welcome %s,</p>
		<p>Your %s account has been created in the Hostel Management
		System. Below are your login credentials:</p>

		<p>Email: <strong>%s</strong><br>
		Password: <strong>%s</strong></p>

		<p>Please change your password after your first login.</p>

		<p>Hostel Management System</p>
	`, fullName, role, email, password)
}
