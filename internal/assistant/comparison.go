package assistant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lukaszlap/paragonyOSA/internal/store"
)

// Shopping list cost comparison. For every item on the list the current
// price (from the receipt line the item links to) is compared against
// per-store average unit prices computed from the whole purchase history,
// producing a cheapest-store recommendation.

type storeOption struct {
	Store      string  `json:"store"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

type productInsight struct {
	ProductID         *int64        `json:"productId"`
	Name              string        `json:"name"`
	RequestedQuantity float64       `json:"requestedQuantity"`
	CurrentUnitPrice  float64       `json:"currentUnitPrice"`
	CurrentTotalPrice float64       `json:"currentTotalPrice"`
	BestOption        *storeOption  `json:"bestOption"`
	StoreOptions      []storeOption `json:"storeOptions"`
}

type storeTotal struct {
	Store        string  `json:"store"`
	TotalCost    float64 `json:"totalCost"`
	CoveredItems int     `json:"coveredItems"`
	MissingItems int     `json:"missingItems"`
	Coverage     float64 `json:"coverage"`
}

type storeRecommendations struct {
	BestStore     *storeTotal  `json:"bestStore"`
	StoreTotals   []storeTotal `json:"storeTotals"`
	MissingPrices []string     `json:"missingPrices"`
}

type costComparisonResult struct {
	ListID                int64                `json:"listId"`
	RequestedItems        int                  `json:"requestedItems"`
	CurrentEstimatedTotal float64              `json:"currentEstimatedTotal"`
	BestPerProductTotal   float64              `json:"bestPerProductTotal"`
	RecommendedStrategy   string               `json:"recommendedStrategy"`
	ProductInsights       []productInsight     `json:"productInsights"`
	StoreRecommendations  storeRecommendations `json:"storeRecommendations"`
	GeneratedAt           string               `json:"generatedAt"`
	Error                 string               `json:"error,omitempty"`
	Suggestion            string               `json:"suggestion,omitempty"`
}

// currentUnitPrice derives a unit price from the receipt line behind a
// list item. Pack quantity zero counts as one unit.
func currentUnitPrice(item store.ListItemDetail) float64 {
	if item.UnitPrice > 0 {
		return item.UnitPrice
	}
	if item.Price <= 0 {
		return 0
	}
	qty := item.PackQty
	if qty <= 0 {
		qty = 1
	}
	return item.Price / qty
}

func (e *Executor) compareShoppingListCosts(ctx context.Context, userID int64, a args) (any, error) {
	generatedAt := e.now().UTC().Format(time.RFC3339)

	listID := a.int64Ptr("list_id")
	id, ok, err := e.resolveListID(ctx, userID, listID, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		if listID != nil {
			return costComparisonResult{
				RecommendedStrategy: "none",
				GeneratedAt:         generatedAt,
				Error:               fmt.Sprintf("Nie znaleziono listy o ID %d", *listID),
			}, nil
		}
		return costComparisonResult{
			RecommendedStrategy: "none",
			GeneratedAt:         generatedAt,
			Error:               "Nie masz żadnych list zakupów",
			Suggestion:          "Utwórz nową listę używając akcji create_list",
		}, nil
	}

	items, err := e.db.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	result := costComparisonResult{
		ListID:              id,
		RequestedItems:      len(items),
		RecommendedStrategy: "none",
		ProductInsights:     []productInsight{},
		StoreRecommendations: storeRecommendations{
			StoreTotals:   []storeTotal{},
			MissingPrices: []string{},
		},
		GeneratedAt: generatedAt,
	}
	if len(items) == 0 {
		return result, nil
	}

	storeStats := map[string]*storeTotal{}
	var storeOrder []string
	var totalCurrent, totalBest float64

	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		unit := currentUnitPrice(item)
		currentTotal := unit * qty
		totalCurrent += currentTotal

		prices, err := e.db.StorePriceAverages(ctx, userID, item.Name)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		options := make([]storeOption, 0, len(prices))
		for _, p := range prices {
			if p.AvgUnit <= 0 {
				continue
			}
			total := p.AvgUnit * qty
			options = append(options, storeOption{
				Store:      p.Store,
				UnitPrice:  round2(p.AvgUnit),
				TotalPrice: round2(total),
			})

			stats, ok := storeStats[p.Store]
			if !ok {
				stats = &storeTotal{Store: p.Store}
				storeStats[p.Store] = stats
				storeOrder = append(storeOrder, p.Store)
			}
			stats.TotalCost += total
			stats.CoveredItems++
		}
		// Stable so equally-priced stores keep their query order
		sort.SliceStable(options, func(i, j int) bool {
			return options[i].TotalPrice < options[j].TotalPrice
		})

		insight := productInsight{
			ProductID:         item.ProductID,
			Name:              item.Name,
			RequestedQuantity: round2(qty),
			CurrentUnitPrice:  round2(unit),
			CurrentTotalPrice: round2(currentTotal),
			StoreOptions:      options,
		}
		if len(options) > 0 {
			best := options[0]
			insight.BestOption = &best
			totalBest += best.TotalPrice
		} else {
			result.StoreRecommendations.MissingPrices = append(result.StoreRecommendations.MissingPrices, item.Name)
		}
		result.ProductInsights = append(result.ProductInsights, insight)
	}

	// First-seen order feeds the stable sort so ties resolve by input order
	totals := make([]storeTotal, 0, len(storeStats))
	for _, name := range storeOrder {
		stats := storeStats[name]
		stats.TotalCost = round2(stats.TotalCost)
		stats.MissingItems = len(items) - stats.CoveredItems
		stats.Coverage = round2(float64(stats.CoveredItems) / float64(len(items)))
		totals = append(totals, *stats)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].CoveredItems != totals[j].CoveredItems {
			return totals[i].CoveredItems > totals[j].CoveredItems
		}
		return totals[i].TotalCost < totals[j].TotalCost
	})
	result.StoreRecommendations.StoreTotals = totals

	var best *storeTotal
	for i := range totals {
		if totals[i].MissingItems == 0 {
			best = &totals[i]
			break
		}
	}
	if best == nil && len(totals) > 0 {
		best = &totals[0]
	}
	result.StoreRecommendations.BestStore = best

	result.CurrentEstimatedTotal = round2(totalCurrent)
	result.BestPerProductTotal = round2(totalBest)
	switch {
	case best != nil && best.MissingItems == 0:
		result.RecommendedStrategy = "single_store"
	case totalBest > 0:
		result.RecommendedStrategy = "per_product"
	}

	return result, nil
}
