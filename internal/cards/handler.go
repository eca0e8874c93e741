package cards

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhuangdx/credit-card-dashboard/internal/models"
	"github.com/zhuangdx/credit-card-dashboard/internal/schedule"
	"github.com/zhuangdx/credit-card-dashboard/internal/store"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// CardStore defines the interface for card persistence. Every method is
// scoped by the owning user; a card that exists but belongs to someone
// else is indistinguishable from one that does not exist.
type CardStore interface {
	ListCards(ctx context.Context, userID string) ([]models.Card, error)
	CreateCard(ctx context.Context, card *models.Card) (*models.Card, error)
	UpdateCard(ctx context.Context, userID, cardID string, patch models.UpdateCardRequest) error
	DeleteCard(ctx context.Context, userID, cardID string) error
	ImportCards(ctx context.Context, userID string, entries []models.ImportEntry) (int, error)
}

// Handler holds card HTTP handlers.
type Handler struct {
	cards CardStore
}

func NewHandler(cards CardStore) *Handler {
	return &Handler{cards: cards}
}

func validDay(d int) bool {
	return d >= 1 && d <= 31
}

// List returns all cards for the current user.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	list, err := h.cards.ListCards(r.Context(), userID)
	if err != nil {
		log.Printf("list cards: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Card{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Create adds a card for the current user. Amounts default to zero when
// omitted.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	var req models.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.BillingDay == nil || req.RepaymentDay == nil {
		http.Error(w, `{"error":"missing required fields: name, billing_day, repayment_day"}`, http.StatusBadRequest)
		return
	}
	if !validDay(*req.BillingDay) || !validDay(*req.RepaymentDay) {
		http.Error(w, `{"error":"billing_day and repayment_day must be between 1 and 31"}`, http.StatusBadRequest)
		return
	}

	card := &models.Card{
		UserID:       userID,
		Name:         req.Name,
		BillingDay:   *req.BillingDay,
		RepaymentDay: *req.RepaymentDay,
	}
	if req.CurrentBillAmount != nil {
		card.CurrentBillAmount = *req.CurrentBillAmount
	}
	if req.UnbilledAmount != nil {
		card.UnbilledAmount = *req.UnbilledAmount
	}
	if card.CurrentBillAmount < 0 || card.UnbilledAmount < 0 {
		http.Error(w, `{"error":"amounts must not be negative"}`, http.StatusBadRequest)
		return
	}

	created, err := h.cards.CreateCard(r.Context(), card)
	if err != nil {
		log.Printf("create card: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to one of the caller's cards. Fields
// absent from the body keep their stored values.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	cardID := chi.URLParam(r, "id")

	var req models.UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.BillingDay != nil && !validDay(*req.BillingDay) {
		http.Error(w, `{"error":"billing_day must be between 1 and 31"}`, http.StatusBadRequest)
		return
	}
	if req.RepaymentDay != nil && !validDay(*req.RepaymentDay) {
		http.Error(w, `{"error":"repayment_day must be between 1 and 31"}`, http.StatusBadRequest)
		return
	}
	if (req.CurrentBillAmount != nil && *req.CurrentBillAmount < 0) ||
		(req.UnbilledAmount != nil && *req.UnbilledAmount < 0) {
		http.Error(w, `{"error":"amounts must not be negative"}`, http.StatusBadRequest)
		return
	}

	if err := h.cards.UpdateCard(r.Context(), userID, cardID, req); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"card not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("update card: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "card updated"})
}

// Delete removes one of the caller's cards.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	cardID := chi.URLParam(r, "id")

	if err := h.cards.DeleteCard(r.Context(), userID, cardID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"card not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("delete card: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "card deleted"})
}

// Import creates cards in bulk from a JSON array. The whole batch is
// applied in one transaction; a failure commits nothing.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	var entries []models.ImportEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		http.Error(w, `{"error":"request body must be an array of cards"}`, http.StatusBadRequest)
		return
	}
	if entries == nil {
		// A literal null decodes into a nil slice without error.
		http.Error(w, `{"error":"request body must be an array of cards"}`, http.StatusBadRequest)
		return
	}
	for _, e := range entries {
		if e.Name == "" || e.BillingDay == nil || e.RepaymentDay == nil {
			http.Error(w, `{"error":"every card needs name, billingDay and repaymentDay"}`, http.StatusBadRequest)
			return
		}
		if !validDay(*e.BillingDay) || !validDay(*e.RepaymentDay) {
			http.Error(w, `{"error":"billingDay and repaymentDay must be between 1 and 31"}`, http.StatusBadRequest)
			return
		}
	}

	n, err := h.cards.ImportCards(r.Context(), userID, entries)
	if err != nil {
		log.Printf("import cards: %v", err)
		http.Error(w, `{"error":"transaction failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, models.ImportResponse{Imported: n})
}

// Schedule computes repayment windows for all of the caller's cards
// against the date query parameter (YYYY-MM-DD), defaulting to today.
// Results are sorted by interest-free days descending.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	txDate := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			http.Error(w, `{"error":"date must be YYYY-MM-DD"}`, http.StatusBadRequest)
			return
		}
		txDate = parsed
	}

	list, err := h.cards.ListCards(r.Context(), userID)
	if err != nil {
		log.Printf("list cards: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, schedule.ComputeAll(txDate, list))
}
