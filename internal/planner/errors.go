package planner

import "errors"

var (
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidMealCount = errors.New("invalid meal count")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrItemNotFound     = errors.New("plan item not found")
	ErrFoodNotFound     = errors.New("food not found")
	ErrNoActivePlan     = errors.New("no active plan")
)
