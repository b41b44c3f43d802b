package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
	"github.com/lukaszlap/paragonyOSA/internal/store"
)

type receiptDetailsResult struct {
	Success       bool                 `json:"success"`
	Receipt       *domain.Receipt      `json:"receipt,omitempty"`
	Products      []domain.ReceiptItem `json:"products,omitempty"`
	ProductsCount int                  `json:"products_count,omitempty"`
	Error         string               `json:"error,omitempty"`
}

func (e *Executor) receiptDetails(ctx context.Context, userID int64, a args) (any, error) {
	id := a.int64Ptr("receipt_id")
	if id == nil {
		return receiptDetailsResult{Error: "Wymagane ID paragonu"}, nil
	}

	receipt, items, err := e.db.ReceiptByID(ctx, userID, *id)
	if errors.Is(err, store.ErrNotFound) {
		return receiptDetailsResult{
			Error: fmt.Sprintf("Nie znaleziono paragonu o ID %d", *id),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return receiptDetailsResult{
		Success:       true,
		Receipt:       receipt,
		Products:      items,
		ProductsCount: len(items),
	}, nil
}

type receiptFilters struct {
	Store     string   `json:"store,omitempty"`
	City      string   `json:"city,omitempty"`
	MinAmount *float64 `json:"min_amount,omitempty"`
	MaxAmount *float64 `json:"max_amount,omitempty"`
	DateRange string   `json:"date_range,omitempty"`
}

type receiptsResult struct {
	Success  bool             `json:"success"`
	Receipts []domain.Receipt `json:"receipts"`
	Count    int              `json:"count"`
	Filters  *receiptFilters  `json:"filters_applied,omitempty"`
}

func (e *Executor) searchReceipts(ctx context.Context, userID int64, a args) (any, error) {
	criteria := store.ReceiptSearch{
		Store:     a.str("store_name"),
		City:      a.str("city"),
		MinAmount: a.floatPtr("min_amount"),
		MaxAmount: a.floatPtr("max_amount"),
		Start:     a.str("start_date"),
		End:       a.str("end_date"),
		Limit:     a.intOr("limit", 20),
	}
	receipts, err := e.db.SearchReceipts(ctx, userID, criteria)
	if err != nil {
		return nil, err
	}

	filters := &receiptFilters{
		Store:     criteria.Store,
		City:      criteria.City,
		MinAmount: criteria.MinAmount,
		MaxAmount: criteria.MaxAmount,
	}
	if criteria.Start != "" || criteria.End != "" {
		filters.DateRange = periodLabel(criteria.Start, criteria.End)
	}
	return receiptsResult{
		Success:  true,
		Receipts: receipts,
		Count:    len(receipts),
		Filters:  filters,
	}, nil
}

func (e *Executor) recentReceipts(ctx context.Context, userID int64, a args) (any, error) {
	limit := a.intOr("limit", 10)
	receipts, err := e.db.RecentReceipts(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return receiptsResult{Success: true, Receipts: receipts, Count: len(receipts)}, nil
}

type receiptStatisticsResult struct {
	Success    bool                    `json:"success"`
	Statistics store.ReceiptStatistics `json:"statistics"`
	Message    string                  `json:"message,omitempty"`
}

func (e *Executor) receiptStatistics(ctx context.Context, userID int64) (any, error) {
	stats, err := e.db.AllTimeStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := receiptStatisticsResult{Success: true, Statistics: stats}
	if stats.Receipts == 0 {
		result.Message = "Brak paragonów w systemie"
	}
	return result, nil
}
