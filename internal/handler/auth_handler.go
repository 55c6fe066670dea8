package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/model"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func validRole(r string) bool {
	switch model.Role(r) {
	case model.RolePractitioner, model.RoleClient, "":
		return true
	}
	return false
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		h.fieldErrors(w, map[string]string{"body": "invalid JSON"})
		return
	}

	errs := map[string]string{}
	if req.Email == "" {
		errs["email"] = "email required"
	}
	if req.Name == "" {
		errs["name"] = "name required"
	}
	if len(req.Password) < 8 {
		errs["password"] = "password must be at least 8 characters"
	}
	if !validRole(req.Role) {
		errs["role"] = "unknown role"
	}
	if len(errs) > 0 {
		h.fieldErrors(w, errs)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.storeErr(w, err)
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         model.Role(req.Role),
	}

	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		h.respond(w, http.StatusConflict, map[string]string{"error": "registration failed"})
		return
	}

	tokens, err := h.issueTokens(r, u)
	if err != nil {
		h.storeErr(w, err)
		return
	}

	h.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	h.respond(w, http.StatusCreated, tokens)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil || req.Email == "" || req.Password == "" {
		h.fieldErrors(w, map[string]string{"credentials": "email and password required"})
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		h.invalidCredentials(w)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		h.invalidCredentials(w)
		return
	}

	tokens, err := h.issueTokens(r, u)
	if err != nil {
		h.storeErr(w, err)
		return
	}

	h.respond(w, http.StatusOK, tokens)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a live refresh token and returns a fresh pair. A revoked
// or expired token is indistinguishable from an unknown one.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decode(r, &req); err != nil || req.RefreshToken == "" {
		h.invalidCredentials(w)
		return
	}

	rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(req.RefreshToken))
	if err != nil || rt.Revoked || h.now().After(rt.ExpiresAt) {
		h.invalidCredentials(w)
		return
	}

	u, err := h.store.UserByID(r.Context(), rt.UserID)
	if err != nil {
		h.invalidCredentials(w)
		return
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.storeErr(w, err)
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, rt.UserID, hash, h.now().Add(refreshTokenTTL)); err != nil {
		h.storeErr(w, err)
		return
	}

	access, err := auth.MakeToken(u.ID, string(u.Role), h.secret)
	if err != nil {
		h.storeErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, tokenResponse{
		UserID:       u.ID,
		Name:         u.Name,
		Role:         string(u.Role),
		Token:        access,
		RefreshToken: raw,
	})
}

// Logout revokes every live refresh token of the actor.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())
	if err := h.store.RevokeAllRefreshTokens(r.Context(), id.UserID); err != nil {
		h.storeErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"redirect": "login"})
}

type tokenResponse struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) issueTokens(r *http.Request, u *model.User) (tokenResponse, error) {
	access, err := auth.MakeToken(u.ID, string(u.Role), h.secret)
	if err != nil {
		return tokenResponse{}, err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return tokenResponse{}, err
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), u.ID, hash, h.now().Add(refreshTokenTTL)); err != nil {
		return tokenResponse{}, err
	}
	return tokenResponse{
		UserID:       u.ID,
		Name:         u.Name,
		Role:         string(u.Role),
		Token:        access,
		RefreshToken: raw,
	}, nil
}

func (h *Handler) invalidCredentials(w http.ResponseWriter) {
	h.respond(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
}
