package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Food хранит снимок корма, который план читает, но никогда не изменяет.
type Food struct {
	ID     uuid.UUID
	Cost   decimal.Decimal
	Weight decimal.Decimal
}

type PlanItem struct {
	ID              uuid.UUID
	FoodID          uuid.UUID
	QuantityPerMeal decimal.Decimal
	NumberOfMeals   int
	CostPerUnit     decimal.Decimal
	TotalQuantity   decimal.Decimal
	TotalCost       decimal.Decimal
}

// Plan описывает редактируемый план кормления. TotalQuantity/TotalCost
// элементов и TotalCost плана всегда пересчитываются и никогда не задаются
// напрямую.
type Plan struct {
	ID           *uuid.UUID
	Name         string
	StartDate    *time.Time
	EndDate      *time.Time
	DurationDays int
	MealsPerDay  int
	DogID        *uuid.UUID
	Notes        string
	Items        []PlanItem
	TotalCost    decimal.Decimal
}

// NewPlan создает пустой план с заданным расписанием.
func NewPlan(name string, durationDays, mealsPerDay int) *Plan {
	return &Plan{
		Name:         name,
		DurationDays: durationDays,
		MealsPerDay:  mealsPerDay,
		Items:        []PlanItem{},
		TotalCost:    decimal.Zero,
	}
}

// SlotCount возвращает полное число кормлений в расписании плана.
func (p *Plan) SlotCount() int {
	return p.DurationDays * p.MealsPerDay
}

// Clone делает глубокую копию плана для снимков истории.
func (p *Plan) Clone() *Plan {
	clone := *p

	if p.ID != nil {
		id := *p.ID
		clone.ID = &id
	}
	if p.StartDate != nil {
		start := *p.StartDate
		clone.StartDate = &start
	}
	if p.EndDate != nil {
		end := *p.EndDate
		clone.EndDate = &end
	}
	if p.DogID != nil {
		dogID := *p.DogID
		clone.DogID = &dogID
	}

	clone.Items = make([]PlanItem, len(p.Items))
	copy(clone.Items, p.Items)

	return &clone
}

func (p *Plan) findItem(itemID uuid.UUID) int {
	for i := range p.Items {
		if p.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
