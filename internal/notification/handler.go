package notification

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/trackaexpense/notify/internal/docstore"
	"github.com/trackaexpense/notify/pkg/middleware"
	"github.com/trackaexpense/notify/pkg/response"
)

// Handler handles HTTP requests for notification operations
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for notification endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/unread-count", h.UnreadCount)
	r.Post("/{id}/read", h.MarkRead)
	r.Post("/read-all", h.MarkAllRead)
	r.Delete("/", h.ClearAll)

	r.Route("/events", func(r chi.Router) {
		r.Post("/split", h.SplitEvent)
		r.Post("/group", h.GroupEvent)
		r.Post("/member", h.MemberEvent)
		r.Post("/invite", h.InviteEvent)
		r.Post("/settlement", h.SettlementEvent)
		r.Post("/reminder", h.ReminderEvent)
		r.Post("/fun", h.FunEvent)
		r.Post("/achievement", h.AchievementEvent)
		r.Post("/test", h.TestEvent)
	})

	return r
}

// List handles GET /notifications
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	entries, err := h.service.List(r.Context(), email)
	if err != nil {
		response.InternalError(w, "Failed to list notifications")
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

// UnreadCount handles GET /notifications/unread-count
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	count, err := h.service.UnreadCount(r.Context(), email)
	if err != nil {
		response.InternalError(w, "Failed to get unread count")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

// MarkRead handles POST /notifications/{id}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.MarkRead(r.Context(), email, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			response.NotFound(w, "Notification not found")
			return
		}
		response.InternalError(w, "Failed to mark notification as read")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// MarkAllRead handles POST /notifications/read-all
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	if err := h.service.MarkAllRead(r.Context(), email); err != nil {
		response.InternalError(w, "Failed to mark all notifications as read")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

// ClearAll handles DELETE /notifications
func (h *Handler) ClearAll(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	if err := h.service.ClearAll(r.Context(), email); err != nil {
		response.InternalError(w, "Failed to clear notifications")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "All notifications cleared"})
}

// SplitEvent handles POST /notifications/events/split
func (h *Handler) SplitEvent(w http.ResponseWriter, r *http.Request) {
	var req SplitEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	group := req.Group.toInfo()
	split := req.Split.toInfo()

	var payload Payload
	includeInvites := false
	switch req.Action {
	case "created":
		payload = SplitCreated(split, group, req.ActorName)
		includeInvites = true
	case "updated":
		payload = SplitUpdated(split, group, req.ActorName)
	case "deleted":
		payload = SplitDeleted(split, group, req.ActorName)
	default:
		response.BadRequest(w, "Unknown split action")
		return
	}

	h.accept(w, GroupRecipients(group, req.ActorEmail, includeInvites), payload)
}

// GroupEvent handles POST /notifications/events/group
func (h *Handler) GroupEvent(w http.ResponseWriter, r *http.Request) {
	var req GroupEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	group := req.Group.toInfo()

	var payload Payload
	includeInvites := false
	switch req.Action {
	case "created":
		payload = GroupCreated(group, req.ActorName)
		includeInvites = true
	case "updated":
		payload = GroupUpdated(group, req.ActorName)
	case "deleted":
		payload = GroupDeleted(group, req.ActorName)
	default:
		response.BadRequest(w, "Unknown group action")
		return
	}

	h.accept(w, GroupRecipients(group, req.ActorEmail, includeInvites), payload)
}

// MemberEvent handles POST /notifications/events/member
func (h *Handler) MemberEvent(w http.ResponseWriter, r *http.Request) {
	var req MemberEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	group := req.Group.toInfo()

	var payload Payload
	switch req.Action {
	case "joined":
		payload = UserJoined(group, req.ActorName)
	case "left":
		payload = UserLeft(group, req.ActorName)
	default:
		response.BadRequest(w, "Unknown member action")
		return
	}

	h.accept(w, GroupRecipients(group, req.ActorEmail, false), payload)
}

// InviteEvent handles POST /notifications/events/invite
func (h *Handler) InviteEvent(w http.ResponseWriter, r *http.Request) {
	var req InviteEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.InviteeEmail == "" {
		response.BadRequest(w, "invitee_email is required")
		return
	}

	h.accept(w, []string{req.InviteeEmail}, SplitInvite(req.Group.toInfo(), req.InviterName))
}

// SettlementEvent handles POST /notifications/events/settlement
func (h *Handler) SettlementEvent(w http.ResponseWriter, r *http.Request) {
	var req SettlementEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	group := req.Group.toInfo()
	h.accept(w, GroupRecipients(group, req.ActorEmail, false), SettlementMade(group, req.Amount, req.ActorName))
}

// ReminderEvent handles POST /notifications/events/reminder
func (h *Handler) ReminderEvent(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDirect(w, r)
	if !ok {
		return
	}
	h.accept(w, []string{req.Recipient}, Reminder(ReminderTopic(req.Topic)))
}

// FunEvent handles POST /notifications/events/fun
func (h *Handler) FunEvent(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDirect(w, r)
	if !ok {
		return
	}
	h.accept(w, []string{req.Recipient}, Fun(req.Context, time.Now()))
}

// AchievementEvent handles POST /notifications/events/achievement
func (h *Handler) AchievementEvent(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDirect(w, r)
	if !ok {
		return
	}
	h.accept(w, []string{req.Recipient}, Achievement(req.Milestone))
}

// TestEvent handles POST /notifications/events/test
func (h *Handler) TestEvent(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDirect(w, r)
	if !ok {
		return
	}
	h.accept(w, []string{req.Recipient}, TestNotification())
}

func (h *Handler) decodeDirect(w http.ResponseWriter, r *http.Request) (DirectEventRequest, bool) {
	var req DirectEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return req, false
	}
	if req.Recipient == "" {
		response.BadRequest(w, "recipient is required")
		return req, false
	}
	return req, true
}

// accept queues the dispatch and responds immediately; delivery is
// best-effort and never blocks or fails the triggering action.
func (h *Handler) accept(w http.ResponseWriter, recipients []string, payload Payload) {
	if len(recipients) == 0 {
		response.JSON(w, http.StatusAccepted, map[string]string{"message": "No recipients"})
		return
	}
	h.service.DispatchAsync(recipients, payload)
	response.JSON(w, http.StatusAccepted, map[string]string{"message": "Notification dispatch accepted"})
}
