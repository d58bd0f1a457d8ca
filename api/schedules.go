package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groupsix/gymbook/internal/domain"
	"github.com/groupsix/gymbook/internal/service/schedule"
)

type ScheduleHandler struct {
	service schedule.ScheduleUseCase
}

func NewScheduleHandler(service schedule.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

type sessionResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"booked_count"`
	Remaining   int    `json:"remaining"`
	Full        bool   `json:"full"`
	CreatedAt   string `json:"created_at"`
}

type scheduleDay struct {
	Date     string            `json:"date"`
	Sessions []sessionResponse `json:"sessions"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:          s.ID,
		Name:        s.Name,
		Date:        s.Date,
		Time:        s.Time,
		Capacity:    s.Capacity,
		BookedCount: s.BookedCount,
		Remaining:   s.Remaining(),
		Full:        s.IsFull(),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}

func toSessionResponses(sessions []domain.Session) []sessionResponse {
	out := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	return out
}

// RegisterAdmin mounts the management routes.
func (h *ScheduleHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/dashboard", h.today)
	router.GET("/schedules", h.list)
	router.POST("/schedules", h.create)
	router.GET("/schedules/:id", h.get)
	router.PUT("/schedules/:id", h.update)
	router.DELETE("/schedules/:id", h.delete)
}

// RegisterCustomer mounts the browse routes.
func (h *ScheduleHandler) RegisterCustomer(router *gin.RouterGroup) {
	router.GET("/schedule", h.upcoming)
	router.GET("/schedule/:id", h.get)
}

func (h *ScheduleHandler) create(c *gin.Context) {
	var req schedule.CreateSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(session))
}

func (h *ScheduleHandler) get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *ScheduleHandler) list(c *gin.Context) {
	sessions, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponses(sessions))
}

func (h *ScheduleHandler) today(c *gin.Context) {
	sessions, err := h.service.ListToday(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponses(sessions))
}

// upcoming serves the customer schedule grouped by date, the shape the
// customer page renders day by day.
func (h *ScheduleHandler) upcoming(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
			return
		}
		days = parsed
	}

	sessions, err := h.service.ListUpcoming(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}

	grouped := make([]scheduleDay, 0)
	for i := range sessions {
		resp := toSessionResponse(&sessions[i])
		if n := len(grouped); n == 0 || grouped[n-1].Date != resp.Date {
			grouped = append(grouped, scheduleDay{Date: resp.Date, Sessions: []sessionResponse{}})
		}
		grouped[len(grouped)-1].Sessions = append(grouped[len(grouped)-1].Sessions, resp)
	}
	c.JSON(http.StatusOK, grouped)
}

func (h *ScheduleHandler) update(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req schedule.UpdateSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *ScheduleHandler) delete(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func sessionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
