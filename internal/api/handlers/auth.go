package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/drivedeal/drivedeal-backend/internal/api/httpx"
	"github.com/drivedeal/drivedeal-backend/internal/auth"
	"github.com/drivedeal/drivedeal-backend/internal/middleware"
	"github.com/drivedeal/drivedeal-backend/internal/services"
)

var validate = validator.New()

// CarrierCookie and CarrierToken select how login hands the credential back.
const (
	CarrierCookie = "cookie"
	CarrierToken  = "token"
)

type AuthHandler struct {
	Users        *services.UserService
	TM           *auth.TokenManager
	Carrier      string
	CookieName   string
	SecureCookie bool
}

type registerReq struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Phone    *string `json:"phone"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	if _, err := h.Users.Register(r.Context(), req.Username, req.Email, req.Password, req.Phone); err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	tok, exp, err := h.TM.Generate(u)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := map[string]any{"success": true, "user": u.Public()}
	if h.Carrier == CarrierToken {
		resp["token"] = tok
	} else {
		http.SetCookie(w, &http.Cookie{
			Name:     h.CookieName,
			Value:    tok,
			Path:     "/",
			Expires:  exp,
			HttpOnly: true,
			Secure:   h.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// Logout clears the session cookie. Tokens are stateless, so the token
// variant simply drops its copy client-side; either way logout is idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteSuccess(w)
}

// Me returns the identity bound to the request.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, id)
}
