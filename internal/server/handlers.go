package server

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/extract"
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/projection"
	"github.com/Veraticus/show-me-the-data/internal/storage"
)

// CreatedAtLayout is the timestamp layout of created_at.
const CreatedAtLayout = "2006-01-02T15:04:05.000000"

type createRequest struct {
	UserID *string `json:"user_id"`
	Text   string  `json:"text"`
	Mode   string  `json:"mode"`
}

type createResponse struct {
	Event      model.EventRecord `json:"event"`
	Analysis   string            `json:"analysis"`
	TokensUsed int               `json:"tokens_used"`
}

type listResponse struct {
	Events []model.EventRecord `json:"events"`
	Total  int                 `json:"total"`
}

type deleteResponse struct {
	Message string `json:"message"`
	EventID string `json:"event_id"`
}

// health handles GET /healthz.
func (s *Server) health(c *fiber.Ctx) error {
	if err := s.repo.Ping(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "storage unavailable: "+err.Error())
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// listEvents handles GET /events.
func (s *Server) listEvents(c *fiber.Ctx) error {
	var filter storage.EventFilter

	if raw := c.Query("event_type"); raw != "" {
		category, err := model.ParseCategory(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		filter.Category = &category
	}
	if owner := c.Query("user_id"); owner != "" {
		filter.OwnerID = &owner
	}

	events, err := s.repo.ListEvents(c.UserContext(), filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "이벤트 목록 조회 실패: "+err.Error())
	}

	return c.JSON(listResponse{Events: events, Total: len(events)})
}

// createEvent handles POST /events.
func (s *Server) createEvent(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid request body: "+err.Error())
	}

	category, err := model.ParseCategory(req.Mode)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, common.ErrEmptyText.Error())
	}

	extraction := s.extract(c, category, req.Text)

	ev := model.EventRecord{
		ID:          model.Ptr(s.newID()),
		Category:    category,
		SubjectName: extraction.SubjectName,
		ScheduledAt: extraction.ScheduledAt,
		Description: extraction.Description,
		OwnerID:     req.UserID,
		SourceText:  req.Text,
		Confidence:  extraction.Confidence,
		CreatedAt:   s.now().Format(CreatedAtLayout),
	}

	if err := s.repo.SaveEvent(c.UserContext(), ev); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "이벤트 생성 실패: "+err.Error())
	}
	s.metrics.RecordEventCreated(string(category))

	s.logger.Info("event created",
		"id", ev.IDValue(),
		"category", string(category),
		"has_schedule", ev.ScheduledAt != nil)

	return c.JSON(createResponse{
		Event:      ev,
		Analysis:   AnalysisSummary(ev),
		TokensUsed: CountTokens(req.Text),
	})
}

func (s *Server) extract(c *fiber.Ctx, category model.Category, text string) extract.Extraction {
	start := time.Now()
	result, err := s.extractor.Extract(c.UserContext(), category, text)
	s.metrics.ObserveExtraction(s.extractor.Name(), time.Since(start).Seconds(), err != nil)
	if err != nil {
		s.logger.Error("extraction failed, storing fallback",
			"error", err,
			"extractor", s.extractor.Name(),
			"category", string(category))
		return extract.Failed()
	}
	return result
}

// getEvent handles GET /events/:id.
func (s *Server) getEvent(c *fiber.Ctx) error {
	id := c.Params("id")
	ev, err := s.repo.GetEvent(c.UserContext(), id)
	if errors.Is(err, common.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "이벤트를 찾을 수 없습니다: "+id)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "이벤트 상세 조회 실패: "+err.Error())
	}
	return c.JSON(ev)
}

// deleteEvent handles DELETE /events/:id.
func (s *Server) deleteEvent(c *fiber.Ctx) error {
	id := c.Params("id")
	err := s.repo.DeleteEvent(c.UserContext(), id)
	if errors.Is(err, common.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "이벤트를 찾을 수 없습니다: "+id)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "이벤트 삭제 실패: "+err.Error())
	}
	s.metrics.RecordEventDeleted()

	s.logger.Info("event deleted", "id", id)
	return c.JSON(deleteResponse{Message: "이벤트가 삭제되었습니다.", EventID: id})
}

// AnalysisSummary describes a newly created event for the dashboard.
func AnalysisSummary(ev model.EventRecord) string {
	name := model.Deref(ev.SubjectName)
	if name == "" {
		name = model.UntitledPlaceholder
	}
	summary := fmt.Sprintf("'%s'의 %s 이벤트가 생성되었습니다.", name, ev.Category)

	if ev.ScheduledAt != nil {
		if start, _, err := projection.ParseStart(*ev.ScheduledAt, time.Local); err == nil {
			summary += " 일정: " + start.Format("2006-01-02 15:04")
		}
	}
	return summary
}

// CountTokens is a rough token estimate of four characters per token.
func CountTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}
