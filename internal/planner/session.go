package planner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session владеет текущим планом и историей его снимков для undo/redo.
// Каждая мутация кладет снимок плана "до" в past и очищает future.
type Session struct {
	plan     *Plan
	past     []*Plan
	future   []*Plan
	maxDepth int
}

// NewSession создает сессию редактирования. maxDepth ограничивает глубину
// истории; 0 означает отсутствие ограничения, как в исходном поведении.
func NewSession(maxDepth int) *Session {
	return &Session{maxDepth: maxDepth}
}

// Plan возвращает текущий план или nil, если план не загружен.
func (s *Session) Plan() *Plan {
	return s.plan
}

// NewPlan заводит пустой план; прежний план (если был) уходит в историю.
func (s *Session) NewPlan(name string, durationDays, mealsPerDay int) *Plan {
	s.replacePlan(NewPlan(name, durationDays, mealsPerDay))
	return s.plan
}

// Load делает переданный план текущим; прежний план уходит в историю.
func (s *Session) Load(plan *Plan) {
	s.replacePlan(plan)
}

// AddItem добавляет корм в текущий план через контрольную точку undo.
func (s *Session) AddItem(food Food, quantityPerMeal decimal.Decimal, numberOfMeals *int) (PlanItem, error) {
	if s.plan == nil {
		return PlanItem{}, ErrNoActivePlan
	}

	snapshot := s.plan.Clone()
	item, err := s.plan.AddItem(food, quantityPerMeal, numberOfMeals)
	if err != nil {
		return PlanItem{}, err
	}

	s.checkpoint(snapshot)
	return item, nil
}

// UpdateItemQuantity меняет количество на кормление через контрольную точку undo.
func (s *Session) UpdateItemQuantity(itemID uuid.UUID, quantityPerMeal decimal.Decimal) error {
	if s.plan == nil {
		return ErrNoActivePlan
	}

	snapshot := s.plan.Clone()
	if err := s.plan.UpdateItemQuantity(itemID, quantityPerMeal); err != nil {
		return err
	}

	s.checkpoint(snapshot)
	return nil
}

// UpdateItemMealCount меняет число кормлений через контрольную точку undo.
func (s *Session) UpdateItemMealCount(itemID uuid.UUID, numberOfMeals int) error {
	if s.plan == nil {
		return ErrNoActivePlan
	}

	snapshot := s.plan.Clone()
	if err := s.plan.UpdateItemMealCount(itemID, numberOfMeals); err != nil {
		return err
	}

	s.checkpoint(snapshot)
	return nil
}

// RemoveItem удаляет элемент плана через контрольную точку undo.
func (s *Session) RemoveItem(itemID uuid.UUID) error {
	if s.plan == nil {
		return ErrNoActivePlan
	}

	snapshot := s.plan.Clone()
	if err := s.plan.RemoveItem(itemID); err != nil {
		return err
	}

	s.checkpoint(snapshot)
	return nil
}

// UpdateSchedule меняет расписание плана через контрольную точку undo.
func (s *Session) UpdateSchedule(durationDays, mealsPerDay *int) error {
	if s.plan == nil {
		return ErrNoActivePlan
	}

	snapshot := s.plan.Clone()
	if err := s.plan.UpdateSchedule(durationDays, mealsPerDay); err != nil {
		return err
	}

	s.checkpoint(snapshot)
	return nil
}

// UpdateDetails меняет имя, даты, собаку и заметки через контрольную точку undo.
func (s *Session) UpdateDetails(apply func(*Plan)) error {
	if s.plan == nil {
		return ErrNoActivePlan
	}

	snapshot := s.plan.Clone()
	apply(s.plan)

	s.checkpoint(snapshot)
	return nil
}

// CanUndo сообщает, есть ли правки для отката.
func (s *Session) CanUndo() bool {
	return len(s.past) > 0
}

// CanRedo сообщает, есть ли откатанные правки для повтора.
func (s *Session) CanRedo() bool {
	return len(s.future) > 0
}

// Undo откатывает последнюю правку; возвращает false, если откатывать нечего.
func (s *Session) Undo() bool {
	if len(s.past) == 0 {
		return false
	}

	last := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, s.plan)
	s.plan = last

	return true
}

// Redo повторяет откатанную правку; возвращает false, если повторять нечего.
func (s *Session) Redo() bool {
	if len(s.future) == 0 {
		return false
	}

	next := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.past = append(s.past, s.plan)
	s.plan = next

	return true
}

func (s *Session) replacePlan(plan *Plan) {
	if s.plan != nil {
		s.checkpoint(s.plan)
		s.plan = plan
		return
	}

	s.plan = plan
}

func (s *Session) checkpoint(snapshot *Plan) {
	s.past = append(s.past, snapshot)
	if s.maxDepth > 0 && len(s.past) > s.maxDepth {
		s.past = s.past[len(s.past)-s.maxDepth:]
	}
	s.future = nil
}
