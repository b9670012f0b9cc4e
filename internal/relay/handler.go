package relay

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// sendRequest is the wire body of POST /send-notification. The format is
// fixed by the mobile clients already calling this endpoint.
type sendRequest struct {
	Tokens       []string          `json:"tokens"`
	Notification *sendNotification `json:"notification"`
	Data         map[string]any    `json:"data"`
}

type sendNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Handler exposes the relay's HTTP surface.
type Handler struct {
	sender Sender
	guard  *IdempotencyGuard
}

// NewHandler creates the relay handler.
func NewHandler(sender Sender, guard *IdempotencyGuard) *Handler {
	return &Handler{sender: sender, guard: guard}
}

// Routes returns the relay router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", h.Health)
	r.Post("/send-notification", h.Send)

	return r
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Send handles POST /send-notification
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	if len(req.Tokens) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tokens (array) is required"})
		return
	}

	var title, body string
	if req.Notification != nil {
		title = req.Notification.Title
		body = req.Notification.Body
	}

	key := BatchKey(title, body, req.Tokens)
	if !h.guard.FirstSeen(key) {
		logrus.WithField("key", key).Info("duplicate batch suppressed")
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"response": BatchResult{Responses: []Result{}},
		})
		return
	}

	messages := BuildMessages(req.Tokens, title, body, req.Data)
	result, err := h.sender.Send(r.Context(), messages)
	if err != nil {
		logrus.WithError(err).Error("batch delivery failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{
		"tokens":  len(req.Tokens),
		"success": result.SuccessCount,
		"failure": result.FailureCount,
	}).Info("batch delivered")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": result,
	})
}

// writeJSON emits raw JSON bodies; the relay keeps the exact wire format
// its existing clients expect rather than the api envelope.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
