package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/service/notify"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/store"
)

const defaultPostingPageSize = 20

// PostingHandlers provides HTTP handlers for job and event postings.
// Posting either kind triggers a global notification fan-out.
type PostingHandlers struct {
	store    store.Store
	notifier *notify.Service
	log      *zerolog.Logger
}

// NewPostingHandlers creates a new posting handlers instance.
func NewPostingHandlers(st store.Store, notifier *notify.Service, logger *zerolog.Logger) *PostingHandlers {
	return &PostingHandlers{
		store:    st,
		notifier: notifier,
		log:      logger,
	}
}

// CreateJobRequest represents the job post request body.
type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// JobResponse represents a job posting in API responses.
type JobResponse struct {
	ID          int64     `json:"id"`
	PostedBy    int64     `json:"posted_by"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateEventRequest represents the event post request body.
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// EventResponse represents an event posting in API responses.
type EventResponse struct {
	ID          int64     `json:"id"`
	CreatedBy   int64     `json:"created_by"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateJob persists a job posting and fans out a global notification.
// POST /api/jobs
func (h *PostingHandlers) CreateJob(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	job := &store.Job{
		PostedBy:    uid,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := h.store.CreateJob(c.Request.Context(), job); err != nil {
		h.log.Error().Err(err).Str("title", req.Title).Msg("failed to create job")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.notifier.CreateGlobalNotification(c.Request.Context(),
		fmt.Sprintf("New job posted: %s at %s", job.Title, job.Company),
		fmt.Sprintf("/jobs/%d", job.ID))

	c.JSON(http.StatusCreated, JobResponse{
		ID:          job.ID,
		PostedBy:    job.PostedBy,
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Description: job.Description,
		CreatedAt:   job.CreatedAt,
	})
}

// ListJobs lists job postings, newest first.
// GET /api/jobs
func (h *PostingHandlers) ListJobs(c *gin.Context) {
	jobs, err := h.store.ListJobs(c.Request.Context(), defaultPostingPageSize)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list jobs")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		response = append(response, JobResponse{
			ID:          job.ID,
			PostedBy:    job.PostedBy,
			Title:       job.Title,
			Company:     job.Company,
			Location:    job.Location,
			Description: job.Description,
			CreatedAt:   job.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// CreateEvent persists an event posting and fans out a global notification.
// POST /api/events
func (h *PostingHandlers) CreateEvent(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ev := &store.Event{
		CreatedBy:   uid,
		Title:       req.Title,
		Location:    req.Location,
		Date:        req.Date,
		Description: req.Description,
	}
	if err := h.store.CreateEvent(c.Request.Context(), ev); err != nil {
		h.log.Error().Err(err).Str("title", req.Title).Msg("failed to create event")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.notifier.CreateGlobalNotification(c.Request.Context(),
		fmt.Sprintf("New event: %s", ev.Title),
		fmt.Sprintf("/events/%d", ev.ID))

	c.JSON(http.StatusCreated, EventResponse{
		ID:          ev.ID,
		CreatedBy:   ev.CreatedBy,
		Title:       ev.Title,
		Location:    ev.Location,
		Date:        ev.Date,
		Description: ev.Description,
		CreatedAt:   ev.CreatedAt,
	})
}

// ListEvents lists event postings, newest first.
// GET /api/events
func (h *PostingHandlers) ListEvents(c *gin.Context) {
	events, err := h.store.ListEvents(c.Request.Context(), defaultPostingPageSize)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list events")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		response = append(response, EventResponse{
			ID:          ev.ID,
			CreatedBy:   ev.CreatedBy,
			Title:       ev.Title,
			Location:    ev.Location,
			Date:        ev.Date,
			Description: ev.Description,
			CreatedAt:   ev.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
