package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
	"github.com/youness/libris/services"
)

// PasswordResetHandler, şifre sıfırlama endpoint'lerini yöneten struct.
type PasswordResetHandler struct {
	resetService services.PasswordResetService
}

// NewPasswordResetHandler, constructor.
func NewPasswordResetHandler(resetService services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: resetService}
}

// RequestReset godoc
// POST /api/request-password-reset
// Body: { "email": "..." }
//
// Email kayıtlıysa sıfırlama linki gönderilir. Kayıtlı değilse 404 döner.
func (h *PasswordResetHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req models.RequestPasswordResetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.resetService.RequestReset(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": "a reset link has been sent to your email",
	})
}

// Reset godoc
// POST /api/reset-password
// Body: { "token": "...", "password": "..." }
//
// Geçersiz/süresi dolmuş/kullanılmış token'ların hepsi 400 döner.
func (h *PasswordResetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.resetService.ResetPassword(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": "password has been reset successfully",
	})
}

// resetPageTemplate, email'deki linkin açtığı basit HTML form.
//
// html/template kullanılır, text/template DEĞİL: token URL'den geldiği
// için attacker-controlled'dır ve sayfaya escape edilmeden basılamaz.
var resetPageTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Reset Password</title>
</head>
<body>
	<h1>Reset your password</h1>
	<form method="post" action="/api/reset-password" id="reset-form">
		<input type="hidden" name="token" value="{{.Token}}">
		<label>New password: <input type="password" name="password" required></label>
		<button type="submit">Reset</button>
	</form>
	<script>
	document.getElementById("reset-form").addEventListener("submit", async function (e) {
		e.preventDefault();
		const form = new FormData(this);
		const resp = await fetch(this.action, {
			method: "POST",
			headers: { "Content-Type": "application/json" },
			body: JSON.stringify({ token: form.get("token"), password: form.get("password") })
		});
		const body = await resp.json();
		alert(resp.ok ? "Password reset successfully." : (body.error || "Reset failed."));
	});
	</script>
</body>
</html>
`))

// ResetPage godoc
// GET /reset-password-page/{token}
func (h *PasswordResetHandler) ResetPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := struct{ Token string }{Token: r.PathValue("token")}
	if err := resetPageTemplate.Execute(w, data); err != nil {
		pkg.ErrorWithMessage(w, http.StatusInternalServerError, "failed to render reset page")
	}
}
