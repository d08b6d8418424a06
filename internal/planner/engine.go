package planner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItem добавляет корм в план. Если numberOfMeals не задан, берется полное
// число кормлений; иначе значение ограничивается сверху числом кормлений.
func (p *Plan) AddItem(food Food, quantityPerMeal decimal.Decimal, numberOfMeals *int) (PlanItem, error) {
	if quantityPerMeal.LessThanOrEqual(decimal.Zero) {
		return PlanItem{}, ErrInvalidQuantity
	}

	meals := p.SlotCount()
	if numberOfMeals != nil {
		if *numberOfMeals <= 0 {
			return PlanItem{}, ErrInvalidMealCount
		}
		meals = clampMeals(*numberOfMeals, p.SlotCount())
	}

	item := PlanItem{
		ID:              uuid.New(),
		FoodID:          food.ID,
		QuantityPerMeal: quantityPerMeal,
		NumberOfMeals:   meals,
	}
	item.recompute(food.Cost.Div(food.Weight))

	p.Items = append(p.Items, item)
	p.RecalculateTotalCost()

	return item, nil
}

// UpdateItemQuantity меняет количество на одно кормление у элемента плана.
func (p *Plan) UpdateItemQuantity(itemID uuid.UUID, quantityPerMeal decimal.Decimal) error {
	if quantityPerMeal.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidQuantity
	}

	idx := p.findItem(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	item := &p.Items[idx]
	item.QuantityPerMeal = quantityPerMeal
	item.recompute(item.CostPerUnit)
	p.RecalculateTotalCost()

	return nil
}

// UpdateItemMealCount меняет число кормлений у элемента с ограничением сверху.
func (p *Plan) UpdateItemMealCount(itemID uuid.UUID, numberOfMeals int) error {
	if numberOfMeals <= 0 {
		return ErrInvalidMealCount
	}

	idx := p.findItem(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	item := &p.Items[idx]
	item.NumberOfMeals = clampMeals(numberOfMeals, p.SlotCount())
	item.recompute(item.CostPerUnit)
	p.RecalculateTotalCost()

	return nil
}

// RemoveItem удаляет элемент плана и пересчитывает итоговую стоимость.
func (p *Plan) RemoveItem(itemID uuid.UUID) error {
	idx := p.findItem(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
	p.RecalculateTotalCost()

	return nil
}

// UpdateSchedule меняет длительность и/или число приемов пищи в день.
// Единственная операция, каскадно ограничивающая число кормлений всех
// элементов новым числом кормлений; количество на кормление сохраняется.
func (p *Plan) UpdateSchedule(durationDays, mealsPerDay *int) error {
	if durationDays != nil && *durationDays <= 0 {
		return ErrInvalidDuration
	}
	if mealsPerDay != nil && *mealsPerDay <= 0 {
		return ErrInvalidMealCount
	}

	if durationDays != nil {
		p.DurationDays = *durationDays
	}
	if mealsPerDay != nil {
		p.MealsPerDay = *mealsPerDay
	}

	slots := p.SlotCount()
	for i := range p.Items {
		item := &p.Items[i]
		if item.NumberOfMeals > slots {
			item.NumberOfMeals = slots
			item.recompute(item.CostPerUnit)
		}
	}

	p.RecalculateTotalCost()
	return nil
}

// RecalculateTotalCost пересчитывает итоговую стоимость плана как точную
// десятичную сумму стоимостей элементов без промежуточных округлений.
func (p *Plan) RecalculateTotalCost() {
	total := decimal.Zero
	for i := range p.Items {
		total = total.Add(p.Items[i].TotalCost)
	}
	p.TotalCost = total
}

// RepriceItems пересчитывает стоимость элементов по текущим ценам кормов.
// Применяется при загрузке сохраненного плана: итоги выводятся из актуальной
// цены корма, а не из сохраненных значений.
func (p *Plan) RepriceItems(foods map[uuid.UUID]Food) error {
	for i := range p.Items {
		item := &p.Items[i]
		food, ok := foods[item.FoodID]
		if !ok {
			return ErrFoodNotFound
		}
		item.recompute(food.Cost.Div(food.Weight))
	}

	p.RecalculateTotalCost()
	return nil
}

func (item *PlanItem) recompute(costPerUnit decimal.Decimal) {
	item.CostPerUnit = costPerUnit
	item.TotalQuantity = item.QuantityPerMeal.Mul(decimal.NewFromInt(int64(item.NumberOfMeals)))
	item.TotalCost = item.CostPerUnit.Mul(item.TotalQuantity)
}

func clampMeals(requested, slots int) int {
	if requested > slots {
		return slots
	}
	return requested
}
