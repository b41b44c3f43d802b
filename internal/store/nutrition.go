package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

func splitAllergens(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ProductNutrition returns nutrition facts for the most recently purchased
// product matching the name, or ErrNotFound when nothing links to EAN data.
func (db *DB) ProductNutrition(ctx context.Context, userID int64, name string) (*domain.NutritionFacts, error) {
	var f domain.NutritionFacts
	var allergens string
	err := db.sql.QueryRowContext(ctx, `
		SELECT e.ean, p.name, e.energy_kcal, e.fat, e.saturated_fat,
		       e.carbohydrates, e.sugars, e.protein, e.salt, e.allergens
		FROM products p
		JOIN receipts r ON r.id = p.receipt_id
		JOIN ean_codes e ON e.ean = p.ean
		WHERE r.user_id = ? AND p.name LIKE ?
		ORDER BY r.added_at DESC LIMIT 1`,
		userID, like(name),
	).Scan(&f.EAN, &f.Name, &f.EnergyKcal, &f.Fat, &f.SaturatedFat,
		&f.Carbohydrates, &f.Sugars, &f.Protein, &f.Salt, &allergens)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("product nutrition: %w", err)
	}
	f.Allergens = splitAllergens(allergens)
	return &f, nil
}

// NutritionSearch carries the optional filters for SearchNutrition. Nil
// pointers mean the bound is not applied.
type NutritionSearch struct {
	MaxCalories  *float64
	MaxSugar     *float64
	MinProtein   *float64
	HasAllergens *bool
	Limit        int
}

// SearchNutrition finds purchased products whose nutrition facts satisfy all
// given bounds, lowest calories first.
func (db *DB) SearchNutrition(ctx context.Context, userID int64, s NutritionSearch) ([]domain.NutritionFacts, error) {
	conds := []string{"r.user_id = ?"}
	args := []any{userID}
	if s.MaxCalories != nil {
		conds = append(conds, "e.energy_kcal <= ?")
		args = append(args, *s.MaxCalories)
	}
	if s.MaxSugar != nil {
		conds = append(conds, "e.sugars <= ?")
		args = append(args, *s.MaxSugar)
	}
	if s.MinProtein != nil {
		conds = append(conds, "e.protein >= ?")
		args = append(args, *s.MinProtein)
	}
	if s.HasAllergens != nil {
		if *s.HasAllergens {
			conds = append(conds, "e.allergens != ''")
		} else {
			conds = append(conds, "e.allergens = ''")
		}
	}

	limit := s.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)

	query := `
		SELECT DISTINCT e.ean, e.name, e.energy_kcal, e.fat, e.saturated_fat,
		       e.carbohydrates, e.sugars, e.protein, e.salt, e.allergens
		FROM products p
		JOIN receipts r ON r.id = p.receipt_id
		JOIN ean_codes e ON e.ean = p.ean
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY e.energy_kcal LIMIT ?`

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search nutrition: %w", err)
	}
	defer rows.Close()

	var out []domain.NutritionFacts
	for rows.Next() {
		var f domain.NutritionFacts
		var allergens string
		if err := rows.Scan(&f.EAN, &f.Name, &f.EnergyKcal, &f.Fat, &f.SaturatedFat,
			&f.Carbohydrates, &f.Sugars, &f.Protein, &f.Salt, &allergens); err != nil {
			return nil, fmt.Errorf("scan nutrition: %w", err)
		}
		f.Allergens = splitAllergens(allergens)
		out = append(out, f)
	}
	return out, rows.Err()
}

// NutritionTotals sums nutrient intake over purchases in the range, scaling
// by purchased quantity.
type NutritionTotals struct {
	Products      int     `json:"products"`
	EnergyKcal    float64 `json:"energyKcal"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugars        float64 `json:"sugars"`
	Protein       float64 `json:"protein"`
	Salt          float64 `json:"salt"`
}

// NutritionSummary aggregates nutrition over purchased products with EAN data.
func (db *DB) NutritionSummary(ctx context.Context, userID int64, start, end string) (NutritionTotals, error) {
	conds := []string{"r.user_id = ?"}
	args := []any{userID}
	dateFilter(&conds, &args, "r.added_at", start, end)

	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(e.energy_kcal * p.quantity), 0),
		       COALESCE(SUM(e.fat * p.quantity), 0),
		       COALESCE(SUM(e.carbohydrates * p.quantity), 0),
		       COALESCE(SUM(e.sugars * p.quantity), 0),
		       COALESCE(SUM(e.protein * p.quantity), 0),
		       COALESCE(SUM(e.salt * p.quantity), 0)
		FROM products p
		JOIN receipts r ON r.id = p.receipt_id
		JOIN ean_codes e ON e.ean = p.ean
		WHERE ` + strings.Join(conds, " AND ")

	var t NutritionTotals
	if err := db.sql.QueryRowContext(ctx, query, args...).Scan(
		&t.Products, &t.EnergyKcal, &t.Fat, &t.Carbohydrates,
		&t.Sugars, &t.Protein, &t.Salt,
	); err != nil {
		return NutritionTotals{}, fmt.Errorf("nutrition summary: %w", err)
	}
	return t, nil
}

// UpsertEAN inserts or replaces nutrition facts for an EAN code.
func (db *DB) UpsertEAN(ctx context.Context, f domain.NutritionFacts) error {
	_, err := db.sql.ExecContext(ctx, `
		INSERT INTO ean_codes (ean, name, energy_kcal, fat, saturated_fat,
			carbohydrates, sugars, protein, salt, allergens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ean) DO UPDATE SET
			name = excluded.name,
			energy_kcal = excluded.energy_kcal,
			fat = excluded.fat,
			saturated_fat = excluded.saturated_fat,
			carbohydrates = excluded.carbohydrates,
			sugars = excluded.sugars,
			protein = excluded.protein,
			salt = excluded.salt,
			allergens = excluded.allergens`,
		f.EAN, f.Name, f.EnergyKcal, f.Fat, f.SaturatedFat,
		f.Carbohydrates, f.Sugars, f.Protein, f.Salt,
		strings.Join(f.Allergens, ","))
	if err != nil {
		return fmt.Errorf("upsert ean: %w", err)
	}
	return nil
}
