// Package http implements the REST API for the LinguaClip backend.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/linguaclip/linguaclip-backend/internal/application/command"
	"github.com/linguaclip/linguaclip-backend/internal/application/query"
	"github.com/linguaclip/linguaclip-backend/internal/domain/progress"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/logger"
)

// userIDHeader identifies the caller. Authentication itself lives at the
// gateway; the backend trusts this header.
const userIDHeader = "X-User-ID"

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// writeDomainError maps a domain error to an HTTP status code.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var code string

	switch {
	case shared.IsValidation(err):
		status, code = http.StatusUnprocessableEntity, "validation_error"
	case shared.IsNotFound(err):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, shared.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case shared.IsConflict(err) || errors.Is(err, shared.ErrAlreadyProcessed):
		status, code = http.StatusConflict, "conflict"
	default:
		s.logger.Error("request failed",
			logger.Err(err),
			logger.String("path", r.URL.Path),
			logger.String("request_id", getRequestID(r.Context())),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	message := err.Error()
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	writeJSONError(w, status, code, message)
}

// requireUserID extracts the caller identity or writes a 401 response.
func (s *Server) requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "X-User-ID header is required")
		return "", false
	}
	return userID, true
}

// decodeBody decodes a JSON request body into dst, enforcing the size limit.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.config.MaxBodyBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to read request body")
		return false
	}
	defer r.Body.Close()

	if err := json.Unmarshal(body, dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload")
		return false
	}
	return true
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "LinguaClip API",
		"version":     "v1",
		"description": "Short-video language learning backend",
		"endpoints": map[string]string{
			"health":   "/health",
			"feed":     "/api/v1/feed",
			"progress": "/api/v1/progress",
			"profile":  "/api/v1/profile",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// updateProfileRequest is the body of PUT /api/v1/profile.
type updateProfileRequest struct {
	TargetLanguage string `json:"target_language"`
	Level          string `json:"level"`
}

// handleUpdateProfile handles PUT /api/v1/profile
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	cmd := command.UpdateProfileCommand{
		UserID:         userID,
		TargetLanguage: req.TargetLanguage,
		Level:          req.Level,
	}

	result, err := s.deps.UpdateProfileHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	writeJSON(w, status, map[string]interface{}{
		"user_id":         result.Profile.UserID,
		"target_language": result.Profile.TargetLanguage.String(),
		"level":           result.Profile.Level.String(),
	})
}

// handleGetProfile handles GET /api/v1/profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	result, err := s.deps.GetProfileHandler.Handle(r.Context(), query.GetProfileQuery{UserID: userID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// FEED HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// handleGetFeed handles GET /api/v1/feed
func (s *Server) handleGetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	q := query.GetFeedPageQuery{
		UserID: userID,
		Cursor: getQueryParam(r, "cursor", ""),
	}

	// A present limit must be a positive integer: "?limit=0" is a client
	// error, not a request for the default page size.
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			s.writeDomainError(w, r, shared.ErrInvalidLimit)
			return
		}
		q.Limit = limit
	}

	result, err := s.deps.GetFeedPageHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// QUIZ & ATTEMPT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetQuiz handles GET /api/v1/content/{id}/quiz
func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	contentID := r.PathValue("id")

	result, err := s.deps.GetQuizHandler.Handle(r.Context(), query.GetQuizQuery{ContentID: contentID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// submitAttemptRequest is the body of POST /api/v1/content/{id}/attempts.
// Answers are keyed by question id, matching the ids GetQuiz exposes.
type submitAttemptRequest struct {
	Answers []answerInput `json:"answers"`
}

type answerInput struct {
	QuestionID    string `json:"question_id"`
	SelectedIndex int    `json:"selected_index"`
}

// handleSubmitAttempt handles POST /api/v1/content/{id}/attempts
func (s *Server) handleSubmitAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	var req submitAttemptRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	answers := make([]progress.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, progress.Answer{
			QuestionID:    a.QuestionID,
			SelectedIndex: a.SelectedIndex,
		})
	}

	cmd := command.SubmitAttemptCommand{
		UserID:        userID,
		ContentID:     r.PathValue("id"),
		Answers:       answers,
		CorrelationID: getRequestID(r.Context()),
	}

	result, err := s.deps.SubmitAttemptHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// handleGetProgress handles GET /api/v1/progress
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	result, err := s.deps.GetProgressHandler.Handle(r.Context(), query.GetProgressQuery{UserID: userID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// CREATOR HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// createContentRequest is the body of POST /api/v1/content.
type createContentRequest struct {
	Language     string `json:"language"`
	Level        string `json:"level"`
	Title        string `json:"title"`
	Caption      string `json:"caption"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// handleCreateContent handles POST /api/v1/content
func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	var req createContentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	cmd := command.CreateContentCommand{
		CreatorID:    creatorID,
		Language:     req.Language,
		Level:        req.Level,
		Title:        req.Title,
		Caption:      req.Caption,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
	}

	result, err := s.deps.CreateContentHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":     result.Content.ID,
		"status": string(result.Content.Status),
	})
}

// authorQuizRequest is the body of PUT /api/v1/content/{id}/quiz.
type authorQuizRequest struct {
	Questions []command.QuestionInput `json:"questions"`
}

// handleAuthorQuiz handles PUT /api/v1/content/{id}/quiz
func (s *Server) handleAuthorQuiz(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	var req authorQuizRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	cmd := command.AuthorQuizCommand{
		CreatorID: creatorID,
		ContentID: r.PathValue("id"),
		Questions: req.Questions,
	}

	result, err := s.deps.AuthorQuizHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quiz_id":        result.Quiz.ID,
		"content_id":     result.Quiz.ContentID,
		"question_count": result.Quiz.QuestionCount(),
	})
}

// handlePublishContent handles POST /api/v1/content/{id}/publish
func (s *Server) handlePublishContent(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	cmd := command.PublishContentCommand{
		CreatorID: creatorID,
		ContentID: r.PathValue("id"),
	}

	result, err := s.deps.PublishContentHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":                result.Content.ID,
		"status":            string(result.Content.Status),
		"published_at":      result.Content.PublishedAt,
		"already_published": result.AlreadyPublished,
	})
}

// handleListCreatorContent handles GET /api/v1/creator/content
func (s *Server) handleListCreatorContent(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	result, err := s.deps.ListCreatorContentHandler.Handle(r.Context(), query.ListCreatorContentQuery{CreatorID: creatorID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
