package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/zhuangdx/credit-card-dashboard/internal/models"
	"github.com/zhuangdx/credit-card-dashboard/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, hashedPw string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users   UserStore
	tokens  *Tokens
	limiter LoginLimiter
}

func NewHandler(users UserStore, tokens *Tokens, limiter LoginLimiter) *Handler {
	return &Handler{users: users, tokens: tokens, limiter: limiter}
}

// Register creates a new user. The password is stored only as a bcrypt
// hash; the plaintext never reaches the store.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, `{"error":"username and password are required"}`, http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, string(hashed))
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			http.Error(w, `{"error":"username already exists"}`, http.StatusConflict)
			return
		}
		log.Printf("create user: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, models.RegisterResponse{UserID: user.ID})
}

// Login authenticates a user and mints a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, `{"error":"username and password are required"}`, http.StatusBadRequest)
		return
	}

	addr := clientAddr(r)
	if !h.limiter.Allow(r.Context(), addr) {
		http.Error(w, `{"error":"too many failed attempts, try again later"}`, http.StatusTooManyRequests)
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"user not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("get user: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		h.limiter.RecordFailure(r.Context(), addr)
		http.Error(w, `{"error":"invalid password"}`, http.StatusUnauthorized)
		return
	}
	h.limiter.Reset(r.Context(), addr)

	token, err := h.tokens.Mint(user.ID)
	if err != nil {
		log.Printf("mint token: %v", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		ID:          user.ID,
		Username:    user.Username,
		AccessToken: token,
	})
}

// Me returns the user the presented bearer token resolves to.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("user_id").(string)
	if userID == "" {
		http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, `{"error":"user not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// clientAddr returns the remote IP without the port. RealIP middleware
// has already rewritten RemoteAddr when the request came via a proxy.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
