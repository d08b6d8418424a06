package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/raw-feed-planner/internal/auth"
	"example.com/raw-feed-planner/internal/repository"
)

type AdminHandler struct {
	Repo *repository.AdminRepository
}

// NewAdminHandler создает обработчик админских эндпоинтов.
func NewAdminHandler(repo *repository.AdminRepository) *AdminHandler {
	return &AdminHandler{Repo: repo}
}

type AdminUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

type AdminUsersResponse struct {
	Total int                 `json:"total"`
	Users []AdminUserResponse `json:"users"`
}

type AdminUsageDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AdminUsageResponse struct {
	Users      int             `json:"users"`
	Dogs       int             `json:"dogs"`
	Foods      int             `json:"foods"`
	Plans      int             `json:"plans"`
	PlansByDay []AdminUsageDay `json:"plans_by_day"`
}

// ListUsers возвращает список пользователей для админки.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, offset, err := parsePagination(c, 50, 200)
	if err != nil {
		return badRequest(c, err.Error())
	}

	users, err := h.Repo.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return serverError(c)
	}

	total, err := h.Repo.CountUsers(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	response := make([]AdminUserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, AdminUserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt.Format(timeLayout),
			UpdatedAt: user.UpdatedAt.Format(timeLayout),
		})
	}

	return c.JSON(http.StatusOK, AdminUsersResponse{
		Total: total,
		Users: response,
	})
}

// Usage возвращает агрегированную статистику использования сервиса.
func (h *AdminHandler) Usage(c echo.Context) error {
	days := 7
	if raw := strings.TrimSpace(c.QueryParam("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid days")
		}
		if parsed > 30 {
			parsed = 30
		}
		days = parsed
	}

	stats, err := h.Repo.UsageStats(c.Request().Context(), days)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid days")
		}
		return serverError(c)
	}

	daysResponse := make([]AdminUsageDay, 0, len(stats.PlansByDay))
	for _, day := range stats.PlansByDay {
		daysResponse = append(daysResponse, AdminUsageDay{
			Date:  day.Day.Format(dateLayout),
			Count: day.Count,
		})
	}

	return c.JSON(http.StatusOK, AdminUsageResponse{
		Users:      stats.Users,
		Dogs:       stats.Dogs,
		Foods:      stats.Foods,
		Plans:      stats.Plans,
		PlansByDay: daysResponse,
	})
}

// AdminMiddleware ограничивает доступ к админским роутам по email.
func AdminMiddleware(users *repository.UserRepository, emails []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		trimmed := strings.ToLower(strings.TrimSpace(email))
		if trimmed == "" {
			continue
		}
		allowed[trimmed] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := auth.UserIDFromContext(c)
			if !ok {
				return unauthorized(c)
			}

			if len(allowed) == 0 {
				return forbidden(c)
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return forbidden(c)
				}
				return serverError(c)
			}

			email := strings.ToLower(strings.TrimSpace(user.Email))
			if _, ok := allowed[email]; !ok {
				return forbidden(c)
			}

			return next(c)
		}
	}
}

func parsePagination(c echo.Context, defaultLimit, maxLimit int) (int, int, error) {
	limit := defaultLimit
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid limit")
		}
		if parsed > maxLimit {
			parsed = maxLimit
		}
		limit = parsed
	}

	offset := 0
	if raw := strings.TrimSpace(c.QueryParam("offset")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, errors.New("invalid offset")
		}
		offset = parsed
	}

	return limit, offset, nil
}
