package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/azizmatyakubov/flirtkey/internal/analytics"
	"github.com/azizmatyakubov/flirtkey/internal/coach"
	"github.com/azizmatyakubov/flirtkey/internal/events"
	"github.com/azizmatyakubov/flirtkey/internal/generate"
	"github.com/azizmatyakubov/flirtkey/internal/history"
	"github.com/azizmatyakubov/flirtkey/internal/tone"
)

type replyRequest struct {
	Message        string `json:"message"`
	Culture        string `json:"culture,omitempty"`
	RegenerateType string `json:"regenerate_type,omitempty"`
}

type replyResponse struct {
	EntryID       string             `json:"entry_id"`
	Suggestions   []coach.Suggestion `json:"suggestions"`
	ProTip        string             `json:"pro_tip,omitempty"`
	InterestLevel *int               `json:"interest_level,omitempty"`
}

// generateReplies handles POST /api/v1/contacts/{contactID}/replies.
// One generation per contact at a time; a second request while one is
// in flight gets 409 rather than queueing.
func (s *Server) generateReplies(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	var req replyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	// Backend enum drift gets coerced, client input does not: a typo'd
	// regenerate_type would splice the wrong tier.
	var regenType tone.SuggestionType
	if req.RegenerateType != "" {
		typ, ok := tone.ParseSuggestionType(req.RegenerateType)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown regenerate_type: "+req.RegenerateType)
			return
		}
		regenType = typ
	}

	if !s.flights.acquire(contactID) {
		writeError(w, http.StatusConflict, "a generation for this contact is already in flight")
		return
	}
	defer s.flights.release(contactID)

	ctx := r.Context()
	contact, err := s.deps.History.GetContact(ctx, contactID)
	if errors.Is(err, history.ErrNotFound) {
		// First conversation with this contact.
		contact = coach.Contact{ID: contactID, RelationshipStage: coach.StageJustMet}
		if err := s.deps.History.UpsertContact(ctx, contact); err != nil {
			s.logger.Error("failed to create contact", "contact", contactID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create contact")
			return
		}
	} else if err != nil {
		s.logger.Error("failed to load contact", "contact", contactID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load contact")
		return
	}

	result, err := s.deps.Generator.GenerateReplies(ctx, s.deps.GenerationAPIKey, contact, req.Message, req.Culture)
	if err != nil {
		s.logger.Error("reply generation failed", "contact", contactID, "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	if req.RegenerateType != "" {
		prev, err := s.deps.History.Recent(ctx, contactID, 1)
		if err != nil {
			s.logger.Error("failed to load previous entry", "contact", contactID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load previous entry")
			return
		}
		if len(prev) > 0 {
			result.Suggestions = generate.MergeRegenerated(prev[0].Suggestions, result.Suggestions, regenType)
		}
	}

	entry := coach.ConversationEntry{
		ContactID:     contactID,
		HerMessage:    req.Message,
		Suggestions:   result.Suggestions,
		ProTip:        result.ProTip,
		InterestLevel: result.InterestLevel,
		Timestamp:     time.Now().UTC(),
	}
	entryID, err := s.deps.History.Append(ctx, entry)
	if err != nil {
		s.logger.Error("failed to persist entry", "contact", contactID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to persist entry")
		return
	}

	if s.deps.Events != nil {
		ev := events.ReplyGenerated{
			ContactID:     contactID,
			EntryID:       entryID.String(),
			Suggestions:   len(result.Suggestions),
			InterestLevel: result.InterestLevel,
			Timestamp:     events.Stamp(entry.Timestamp),
		}
		if err := s.deps.Events.Publish(events.SubjectReplyGenerated, ev); err != nil {
			s.logger.Warn("failed to publish reply event", "contact", contactID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, replyResponse{
		EntryID:       entryID.String(),
		Suggestions:   result.Suggestions,
		ProTip:        result.ProTip,
		InterestLevel: result.InterestLevel,
	})
}

type openerRequest struct {
	ProfileText string `json:"profile_text,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Tone        string `json:"tone,omitempty"`
}

type openerItem struct {
	Text        string    `json:"text"`
	Tone        tone.Tone `json:"tone"`
	Explanation string    `json:"explanation,omitempty"`
}

type openerResponse struct {
	Openers []openerItem `json:"openers"`
}

// generateOpeners handles POST /api/v1/openers. Accepts either the
// profile text directly or a screenshot to OCR first. Openers are
// never persisted; the response is the whole outcome.
func (s *Server) generateOpeners(w http.ResponseWriter, r *http.Request) {
	var req openerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	ctx := r.Context()
	profileText := req.ProfileText
	if profileText == "" && req.ImageBase64 != "" {
		text, err := s.deps.OCR.PerformOCR(ctx, req.ImageBase64, s.deps.OCRAPIKey)
		if err != nil {
			s.logger.Error("ocr failed", "error", err)
			writeError(w, statusFor(err), err.Error())
			return
		}
		profileText = text
	}

	var toneFilter *tone.Tone
	if req.Tone != "" {
		t := tone.NormalizeTone(req.Tone)
		toneFilter = &t
	}

	openers, err := s.deps.Generator.GenerateOpeners(ctx, s.deps.GenerationAPIKey, profileText, toneFilter)
	if err != nil {
		s.logger.Error("opener generation failed", "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	if s.deps.Events != nil {
		var filter string
		if toneFilter != nil {
			filter = string(*toneFilter)
		}
		ev := events.OpenerGenerated{
			Openers:    len(openers),
			ToneFilter: filter,
			Timestamp:  events.Stamp(time.Now().UTC()),
		}
		if err := s.deps.Events.Publish(events.SubjectOpenerGenerated, ev); err != nil {
			s.logger.Warn("failed to publish opener event", "error", err)
		}
	}

	items := make([]openerItem, 0, len(openers))
	for _, o := range openers {
		items = append(items, openerItem{Text: o.Text, Tone: o.Tone, Explanation: o.Explanation})
	}
	writeJSON(w, http.StatusOK, openerResponse{Openers: items})
}

type entryItem struct {
	ID            string             `json:"id"`
	HerMessage    string             `json:"her_message"`
	Suggestions   []coach.Suggestion `json:"suggestions"`
	ProTip        string             `json:"pro_tip,omitempty"`
	InterestLevel *int               `json:"interest_level,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
}

// contactHistory handles GET /api/v1/contacts/{contactID}/history.
func (s *Server) contactHistory(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit: "+raw)
			return
		}
		limit = n
	}

	entries, err := s.deps.History.Recent(r.Context(), contactID, limit)
	if err != nil {
		s.logger.Error("failed to load history", "contact", contactID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	items := make([]entryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryItem{
			ID:            e.ID.String(),
			HerMessage:    e.HerMessage,
			Suggestions:   e.Suggestions,
			ProTip:        e.ProTip,
			InterestLevel: e.InterestLevel,
			Timestamp:     e.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": items})
}

type trendResponse struct {
	Delta int                  `json:"delta"`
	Label analytics.TrendLabel `json:"label"`
	Stats analytics.Stats      `json:"stats"`
}

// contactTrend handles GET /api/v1/contacts/{contactID}/trend.
func (s *Server) contactTrend(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	entries, err := s.deps.History.Recent(r.Context(), contactID, 0)
	if err != nil {
		s.logger.Error("failed to load history", "contact", contactID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	trend := analytics.ComputeTrend(entries)
	writeJSON(w, http.StatusOK, trendResponse{
		Delta: trend.Delta,
		Label: trend.Label,
		Stats: analytics.AggregateStats(entries),
	})
}

// recordOpen handles POST /api/v1/users/{userID}/opens.
func (s *Server) recordOpen(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := s.deps.Usage.RecordOpen(r.Context(), userID, time.Now().UTC()); err != nil {
		s.logger.Error("failed to record open", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record open")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

type streakResponse struct {
	Streak   int `json:"streak"`
	AppOpens int `json:"app_opens"`
}

// userStreak handles GET /api/v1/users/{userID}/streak.
func (s *Server) userStreak(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := s.deps.Usage.Stats(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to load usage stats", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load usage stats")
		return
	}

	writeJSON(w, http.StatusOK, streakResponse{
		Streak:   analytics.ComputeStreak(stats, time.Now().UTC()),
		AppOpens: stats.AppOpens,
	})
}
