package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/auth"
	"example.com/raw-feed-planner/internal/config"
	"example.com/raw-feed-planner/internal/notifications"
	"example.com/raw-feed-planner/internal/planner"
	"example.com/raw-feed-planner/internal/repository"
	"example.com/raw-feed-planner/internal/sessions"
)

const defaultPlanName = "New plan"

var (
	errQuantityRequired = errors.New("quantity_per_meal is required when the plan has no dog")
	errDogNotFound      = errors.New("dog not found")
)

type SessionHandler struct {
	Store    *sessions.Store
	Plans    *repository.PlanRepository
	Foods    *repository.FoodRepository
	Dogs     *repository.DogRepository
	Notifier *notifications.Hub
	Defaults config.PlannerConfig
}

// NewSessionHandler создает обработчик сессий редактирования планов.
func NewSessionHandler(store *sessions.Store, plans *repository.PlanRepository, foods *repository.FoodRepository, dogs *repository.DogRepository, notifier *notifications.Hub, defaults config.PlannerConfig) *SessionHandler {
	return &SessionHandler{Store: store, Plans: plans, Foods: foods, Dogs: dogs, Notifier: notifier, Defaults: defaults}
}

type CreateSessionRequest struct {
	PlanID       *string `json:"plan_id"`
	Name         *string `json:"name" validate:"omitempty,max=200"`
	DurationDays *int    `json:"duration_days"`
	MealsPerDay  *int    `json:"meals_per_day"`
}

type SessionItemRequest struct {
	FoodID          string  `json:"food_id" validate:"required"`
	QuantityPerMeal *string `json:"quantity_per_meal"`
	NumberOfMeals   *int    `json:"number_of_meals"`
}

type SessionQuantityRequest struct {
	QuantityPerMeal string `json:"quantity_per_meal" validate:"required"`
}

type SessionMealsRequest struct {
	NumberOfMeals int `json:"number_of_meals" validate:"required"`
}

type SessionScheduleRequest struct {
	DurationDays *int `json:"duration_days"`
	MealsPerDay  *int `json:"meals_per_day"`
}

type SessionDetailsRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=200"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
	DogID     *string `json:"dog_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type SessionItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	FoodID          uuid.UUID       `json:"food_id"`
	QuantityPerMeal decimal.Decimal `json:"quantity_per_meal"`
	NumberOfMeals   int             `json:"number_of_meals"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

type SessionPlanResponse struct {
	ID           *uuid.UUID            `json:"id,omitempty"`
	Name         string                `json:"name"`
	StartDate    *string               `json:"start_date,omitempty"`
	EndDate      *string               `json:"end_date,omitempty"`
	DurationDays int                   `json:"duration_days"`
	MealsPerDay  int                   `json:"meals_per_day"`
	DogID        *uuid.UUID            `json:"dog_id,omitempty"`
	Notes        string                `json:"notes"`
	Items        []SessionItemResponse `json:"items"`
	TotalCost    decimal.Decimal       `json:"total_cost"`
}

type SessionResponse struct {
	SessionID uuid.UUID            `json:"session_id"`
	Plan      *SessionPlanResponse `json:"plan,omitempty"`
	CanUndo   bool                 `json:"can_undo"`
	CanRedo   bool                 `json:"can_redo"`
}

// Create открывает сессию редактирования: пустой план или копию сохраненного.
func (h *SessionHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	var loaded *planner.Plan
	if req.PlanID != nil && strings.TrimSpace(*req.PlanID) != "" {
		planID, err := uuid.Parse(strings.TrimSpace(*req.PlanID))
		if err != nil {
			return badRequest(c, "invalid plan_id")
		}

		plan, err := h.Plans.GetByID(c.Request().Context(), userID, planID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound(c, "plan not found")
			}
			return serverError(c)
		}

		loaded, _, err = loadPlannerPlan(c.Request().Context(), h.Plans, h.Foods, plan)
		if err != nil {
			return serverError(c)
		}
	}

	sessionID, session := h.Store.Create(userID)
	if loaded != nil {
		session.Load(loaded)
	} else {
		name := defaultPlanName
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			name = strings.TrimSpace(*req.Name)
		}

		durationDays := h.Defaults.DefaultPlanDays
		if req.DurationDays != nil {
			if *req.DurationDays <= 0 {
				h.Store.Delete(userID, sessionID)
				return badRequest(c, "duration_days must be greater than 0")
			}
			durationDays = *req.DurationDays
		}

		mealsPerDay := h.Defaults.DefaultMealsPerDay
		if req.MealsPerDay != nil {
			if *req.MealsPerDay <= 0 {
				h.Store.Delete(userID, sessionID)
				return badRequest(c, "meals_per_day must be greater than 0")
			}
			mealsPerDay = *req.MealsPerDay
		}

		session.NewPlan(name, durationDays, mealsPerDay)
	}

	return c.JSON(http.StatusCreated, toSessionResponse(sessionID, session))
}

// Get возвращает текущее состояние сессии редактирования.
func (h *SessionHandler) Get(c echo.Context) error {
	return h.withSession(c, func(*planner.Session) error { return nil })
}

// AddItem добавляет корм в редактируемый план.
func (h *SessionHandler) AddItem(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req SessionItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	foodID, err := uuid.Parse(strings.TrimSpace(req.FoodID))
	if err != nil {
		return badRequest(c, "invalid food_id")
	}

	quantity, err := parseOptionalPositiveDecimal(req.QuantityPerMeal, "quantity_per_meal")
	if err != nil {
		return badRequest(c, err.Error())
	}

	food, err := h.Foods.GetByID(c.Request().Context(), userID, foodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "food not found")
		}
		return serverError(c)
	}

	return h.withSession(c, func(session *planner.Session) error {
		amount := quantity
		if amount == nil {
			seeded, err := h.seedQuantity(c.Request().Context(), userID, session.Plan())
			if err != nil {
				return err
			}
			amount = &seeded
		}

		_, err := session.AddItem(plannerFood(food), *amount, req.NumberOfMeals)
		return err
	})
}

// seedQuantity выводит количество на кормление из дневной порции собаки плана.
func (h *SessionHandler) seedQuantity(ctx context.Context, userID uuid.UUID, plan *planner.Plan) (decimal.Decimal, error) {
	if plan == nil {
		return decimal.Decimal{}, planner.ErrNoActivePlan
	}
	if plan.DogID == nil {
		return decimal.Decimal{}, errQuantityRequired
	}

	dog, err := h.Dogs.GetByID(ctx, userID, *plan.DogID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return decimal.Decimal{}, errDogNotFound
		}
		return decimal.Decimal{}, err
	}

	return planner.DefaultQuantityPerMeal(dog.PortionSize, plan.MealsPerDay), nil
}

// UpdateItemQuantity меняет количество на кормление у элемента плана.
func (h *SessionHandler) UpdateItemQuantity(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	var req SessionQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	quantity, err := parsePositiveDecimal(req.QuantityPerMeal, "quantity_per_meal")
	if err != nil {
		return badRequest(c, err.Error())
	}

	return h.withSession(c, func(session *planner.Session) error {
		return session.UpdateItemQuantity(itemID, quantity)
	})
}

// UpdateItemMealCount меняет число кормлений у элемента плана.
func (h *SessionHandler) UpdateItemMealCount(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	var req SessionMealsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	return h.withSession(c, func(session *planner.Session) error {
		return session.UpdateItemMealCount(itemID, req.NumberOfMeals)
	})
}

// RemoveItem удаляет элемент из редактируемого плана.
func (h *SessionHandler) RemoveItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	return h.withSession(c, func(session *planner.Session) error {
		return session.RemoveItem(itemID)
	})
}

// UpdateSchedule меняет длительность и число приемов пищи в день.
func (h *SessionHandler) UpdateSchedule(c echo.Context) error {
	var req SessionScheduleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	if req.DurationDays == nil && req.MealsPerDay == nil {
		return badRequest(c, "duration_days or meals_per_day is required")
	}

	return h.withSession(c, func(session *planner.Session) error {
		return session.UpdateSchedule(req.DurationDays, req.MealsPerDay)
	})
}

// UpdateDetails меняет имя, заметки, собаку и даты редактируемого плана.
func (h *SessionHandler) UpdateDetails(c echo.Context) error {
	var req SessionDetailsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	var name *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return badRequest(c, "name must not be empty")
		}
		name = &trimmed
	}

	var dogID *uuid.UUID
	clearDog := false
	if req.DogID != nil {
		if strings.TrimSpace(*req.DogID) == "" {
			clearDog = true
		} else {
			parsed, err := uuid.Parse(strings.TrimSpace(*req.DogID))
			if err != nil {
				return badRequest(c, "invalid dog_id")
			}
			dogID = &parsed
		}
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return h.withSession(c, func(session *planner.Session) error {
		return session.UpdateDetails(func(plan *planner.Plan) {
			if name != nil {
				plan.Name = *name
			}
			if req.Notes != nil {
				plan.Notes = strings.TrimSpace(*req.Notes)
			}
			if clearDog {
				plan.DogID = nil
			} else if dogID != nil {
				plan.DogID = dogID
			}
			if startDate != nil {
				plan.StartDate = startDate
			}
			if endDate != nil {
				plan.EndDate = endDate
			}
		})
	})
}

// Undo откатывает последнюю правку; пустая история не считается ошибкой.
func (h *SessionHandler) Undo(c echo.Context) error {
	return h.withSession(c, func(session *planner.Session) error {
		session.Undo()
		return nil
	})
}

// Redo повторяет откатанную правку; пустая история не считается ошибкой.
func (h *SessionHandler) Redo(c echo.Context) error {
	return h.withSession(c, func(session *planner.Session) error {
		session.Redo()
		return nil
	})
}

// Save сохраняет редактируемый план; неудачное сохранение не трогает сессию.
func (h *SessionHandler) Save(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return badRequest(c, "invalid session id")
	}

	var response SessionResponse
	err = h.Store.With(userID, sessionID, func(session *planner.Session) error {
		draft := session.Plan()
		if draft == nil {
			return planner.ErrNoActivePlan
		}

		plan, items := planModels(userID, draft)

		var saved uuid.UUID
		if draft.ID == nil {
			created, err := h.Plans.Create(c.Request().Context(), plan, items)
			if err != nil {
				return err
			}
			saved = created.ID
			draft.ID = &saved
		} else {
			updated, err := h.Plans.Update(c.Request().Context(), plan, items)
			if err != nil {
				return err
			}
			saved = updated.ID
		}

		publishPlanUpdate(h.Notifier, userID, saved, draft.TotalCost)
		response = toSessionResponse(sessionID, session)
		return nil
	})
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Discard закрывает сессию, отбрасывая несохраненные правки и историю.
func (h *SessionHandler) Discard(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return badRequest(c, "invalid session id")
	}

	h.Store.Delete(userID, sessionID)
	return c.NoContent(http.StatusNoContent)
}

// withSession выполняет правку над сессией и отвечает ее новым состоянием.
func (h *SessionHandler) withSession(c echo.Context, edit func(*planner.Session) error) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return badRequest(c, "invalid session id")
	}

	var response SessionResponse
	err = h.Store.With(userID, sessionID, func(session *planner.Session) error {
		if err := edit(session); err != nil {
			return err
		}
		response = toSessionResponse(sessionID, session)
		return nil
	})
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *SessionHandler) sessionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		return notFound(c, "session not found")
	case errors.Is(err, planner.ErrNoActivePlan):
		return conflict(c, "no active plan")
	case errors.Is(err, planner.ErrItemNotFound):
		return notFound(c, "plan item not found")
	case errors.Is(err, planner.ErrInvalidQuantity), errors.Is(err, planner.ErrInvalidMealCount), errors.Is(err, planner.ErrInvalidDuration):
		return badRequest(c, err.Error())
	case errors.Is(err, errQuantityRequired):
		return badRequest(c, err.Error())
	case errors.Is(err, errDogNotFound):
		return notFound(c, "dog not found")
	case errors.Is(err, repository.ErrNotFound):
		return notFound(c, "plan not found")
	case errors.Is(err, repository.ErrInvalid):
		return badRequest(c, "invalid plan")
	default:
		return serverError(c)
	}
}

func toSessionResponse(sessionID uuid.UUID, session *planner.Session) SessionResponse {
	response := SessionResponse{
		SessionID: sessionID,
		CanUndo:   session.CanUndo(),
		CanRedo:   session.CanRedo(),
	}

	plan := session.Plan()
	if plan == nil {
		return response
	}

	planResponse := SessionPlanResponse{
		ID:           plan.ID,
		Name:         plan.Name,
		DurationDays: plan.DurationDays,
		MealsPerDay:  plan.MealsPerDay,
		DogID:        plan.DogID,
		Notes:        plan.Notes,
		Items:        make([]SessionItemResponse, 0, len(plan.Items)),
		TotalCost:    plan.TotalCost,
	}

	if plan.StartDate != nil {
		formatted := plan.StartDate.Format(dateLayout)
		planResponse.StartDate = &formatted
	}
	if plan.EndDate != nil {
		formatted := plan.EndDate.Format(dateLayout)
		planResponse.EndDate = &formatted
	}

	for _, item := range plan.Items {
		planResponse.Items = append(planResponse.Items, SessionItemResponse{
			ID:              item.ID,
			FoodID:          item.FoodID,
			QuantityPerMeal: item.QuantityPerMeal,
			NumberOfMeals:   item.NumberOfMeals,
			CostPerUnit:     item.CostPerUnit,
			TotalQuantity:   item.TotalQuantity,
			TotalCost:       item.TotalCost,
		})
	}

	response.Plan = &planResponse
	return response
}
