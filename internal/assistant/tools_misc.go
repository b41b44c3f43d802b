package assistant

import (
	"context"
	"errors"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
	"github.com/lukaszlap/paragonyOSA/internal/store"
)

type userLogsResult struct {
	Logs               []domain.ActivityEntry `json:"logs"`
	Count              int                    `json:"count"`
	ActionSummary      map[string]int         `json:"action_summary"`
	ActionDescriptions map[string]string      `json:"action_descriptions"`
	Period             string                 `json:"period"`
	FilteredByAction   string                 `json:"filtered_by_action,omitempty"`
}

func (e *Executor) userLogs(ctx context.Context, userID int64, a args) (any, error) {
	start, end := a.str("start_date"), a.str("end_date")
	actionType := a.str("action_type")
	limit := a.intOr("limit", 20)

	logs, err := e.db.ActivityEntries(ctx, userID, actionType, start, end, limit)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	descriptions := make(map[string]string)
	for _, entry := range logs {
		counts[entry.Action]++
		if desc, ok := actionDescriptions[entry.Action]; ok {
			descriptions[entry.Action] = desc
		}
	}

	return userLogsResult{
		Logs:               logs,
		Count:              len(logs),
		ActionSummary:      counts,
		ActionDescriptions: descriptions,
		Period:             periodLabel(start, end),
		FilteredByAction:   actionType,
	}, nil
}

type notificationsResult struct {
	Success       bool                  `json:"success"`
	Notifications []domain.Notification `json:"notifications"`
	Count         int                   `json:"count"`
}

func (e *Executor) notifications(ctx context.Context, userID int64, a args) (any, error) {
	unreadOnly := a.boolOr("unread_only", false)
	limit := a.intOr("limit", 20)

	list, err := e.db.Notifications(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	return notificationsResult{Success: true, Notifications: list, Count: len(list)}, nil
}

type productNutritionResult struct {
	Success     bool                   `json:"success"`
	ProductName string                 `json:"product_name"`
	Nutrition   *domain.NutritionFacts `json:"nutrition_per_100g,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Suggestion  string                 `json:"suggestion,omitempty"`
}

func (e *Executor) productNutrition(ctx context.Context, userID int64, a args) (any, error) {
	name := a.str("product_name")
	facts, err := e.db.ProductNutrition(ctx, userID, name)
	if errors.Is(err, store.ErrNotFound) {
		return productNutritionResult{
			ProductName: name,
			Error:       "Nie znaleziono informacji żywieniowych dla tego produktu",
			Suggestion:  "Produkt nie ma przypisanego kodu EAN lub nie został jeszcze zeskanowany",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return productNutritionResult{
		Success:     true,
		ProductName: facts.Name,
		Nutrition:   facts,
	}, nil
}

type nutritionFilters struct {
	MaxCalories  *float64 `json:"max_calories,omitempty"`
	MaxSugar     *float64 `json:"max_sugar,omitempty"`
	MinProtein   *float64 `json:"min_protein,omitempty"`
	AllergenFree bool     `json:"allergen_free,omitempty"`
}

type nutritionSearchResult struct {
	Success  bool                    `json:"success"`
	Products []domain.NutritionFacts `json:"products"`
	Count    int                     `json:"count"`
	Filters  nutritionFilters        `json:"filters"`
}

func (e *Executor) searchProductsByNutrition(ctx context.Context, userID int64, a args) (any, error) {
	criteria := store.NutritionSearch{
		MaxCalories:  a.floatPtr("max_calories"),
		MaxSugar:     a.floatPtr("max_sugar"),
		MinProtein:   a.floatPtr("min_protein"),
		HasAllergens: a.boolPtr("has_allergens"),
		Limit:        50,
	}
	products, err := e.db.SearchNutrition(ctx, userID, criteria)
	if err != nil {
		return nil, err
	}

	allergenFree := criteria.HasAllergens != nil && !*criteria.HasAllergens
	return nutritionSearchResult{
		Success:  true,
		Products: products,
		Count:    len(products),
		Filters: nutritionFilters{
			MaxCalories:  criteria.MaxCalories,
			MaxSugar:     criteria.MaxSugar,
			MinProtein:   criteria.MinProtein,
			AllergenFree: allergenFree,
		},
	}, nil
}

type nutritionSummaryResult struct {
	Success bool                  `json:"success"`
	Summary store.NutritionTotals `json:"summary"`
	Period  string                `json:"period"`
	Message string                `json:"message,omitempty"`
}

func (e *Executor) nutritionSummary(ctx context.Context, userID int64, a args) (any, error) {
	start, end := a.str("start_date"), a.str("end_date")
	totals, err := e.db.NutritionSummary(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	result := nutritionSummaryResult{
		Success: true,
		Summary: totals,
		Period:  periodLabel(start, end),
	}
	if totals.Products == 0 {
		result.Message = "Brak produktów z informacjami żywieniowymi w tym okresie"
	}
	return result, nil
}
