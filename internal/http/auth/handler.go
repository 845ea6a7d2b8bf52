package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebenezer-app/ebenezer/internal/http/respond"
	"github.com/ebenezer-app/ebenezer/internal/identity"
)

type Handler struct {
	svc    *identity.Service
	tokens *identity.Tokens
}

func NewHandler(svc *identity.Service, tokens *identity.Tokens) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/signup", h.signUp)
	r.Post("/signin", h.signIn)

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(h.tokens))
		r.Post("/signout", h.signOut)
		r.Get("/me", h.me)
	})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *identity.User) userResponse {
	resp := userResponse{ID: u.ID, Email: u.Email}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = new(u.CreatedAt)
	}

	return resp
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.svc.SignUp, http.StatusCreated)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.svc.SignIn, http.StatusOK)
}

type credentialsFunc func(ctx context.Context, email, password string) (*identity.User, error)

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, fn credentialsFunc, status int) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := fn(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, status, sessionResponse{Token: token, User: toUserResponse(u)})
}

// signOut acknowledges the request. Tokens are stateless, so the client discards its copy.
func (h *Handler) signOut(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claimed, err := identity.UserFromContext(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.svc.User(r.Context(), claimed.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toUserResponse(u))
}
