package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/middleware"
	"github.com/anikettiwarime/VideoTube/internal/service"
	"github.com/anikettiwarime/VideoTube/pkg/response"
)

const refreshTokenCookie = "refreshToken"

type AuthHandler struct {
	authService   *service.AuthService
	validator     *validator.Validate
	secureCookies bool
}

func NewAuthHandler(authService *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		validator:     validator.New(),
		secureCookies: secureCookies,
	}
}

// Register expects multipart form data: the profile fields plus an
// avatar file and an optional coverImage file.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	req := domain.RegisterRequest{
		Fullname: r.FormValue("fullname"),
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	avatarPath, err := saveFormFile(r, "avatar")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	coverPath, err := saveFormFile(r, "coverImage")
	if err != nil {
		removeTempFiles(avatarPath)
		response.BadRequest(w, err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), &req, avatarPath, coverPath)
	if err != nil {
		removeTempFiles(avatarPath, coverPath)
		respondError(w, err)
		return
	}

	response.Created(w, user, "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	loginResp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.setAuthCookies(w, loginResp.AccessToken, loginResp.RefreshToken)
	response.Success(w, loginResp, "Logged in successfully")
}

// Refresh accepts the refresh token from the request body or, failing
// that, the cookie set at login.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshTokenRequest
	if r.Body != nil {
		// A missing or empty body is fine; the cookie is the fallback.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.RefreshToken == "" {
		if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
			req.RefreshToken = cookie.Value
		}
	}

	pair, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	h.setAuthCookies(w, pair.AccessToken, pair.RefreshToken)
	response.Success(w, pair, "Token refreshed")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.GetUserID(r)); err != nil {
		respondError(w, err)
		return
	}

	h.clearAuthCookies(w)
	response.Success(w, nil, "Logged out successfully")
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.authService.ChangePassword(r.Context(), middleware.GetUserID(r), &req); err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, nil, "Password changed successfully")
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
