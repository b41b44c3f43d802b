package domain

import "time"

// User is an account row resolved from an API token.
type User struct {
	ID     int64  `json:"id"`
	Login  string `json:"login"`
	Status string `json:"status"`
}

// Receipt is a purchase record with its shop and location resolved.
type Receipt struct {
	ID       int64     `json:"id"`
	Store    string    `json:"store"`
	City     string    `json:"city,omitempty"`
	Total    float64   `json:"total"`
	Discount float64   `json:"discount,omitempty"`
	AddedAt  time.Time `json:"date"`
}

// ReceiptItem is a single product line on a receipt.
type ReceiptItem struct {
	ID        int64   `json:"id"`
	ReceiptID int64   `json:"receiptId"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
	Unit      string  `json:"unit,omitempty"`
}

// BudgetLimit is a per-category monthly spending cap.
type BudgetLimit struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ShoppingList groups planned purchases.
type ShoppingList struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShoppingListItem is one entry on a shopping list. ProductID is nil for
// free-text items that never matched purchase history.
type ShoppingListItem struct {
	ID        int64   `json:"id"`
	ListID    int64   `json:"listId"`
	ProductID *int64  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
}

// Notification is a budget alert raised for a user.
type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// NutritionFacts holds per-100g nutrition data for an EAN code.
type NutritionFacts struct {
	EAN           string   `json:"ean"`
	Name          string   `json:"name"`
	EnergyKcal    float64  `json:"energyKcal"`
	Fat           float64  `json:"fat"`
	SaturatedFat  float64  `json:"saturatedFat"`
	Carbohydrates float64  `json:"carbohydrates"`
	Sugars        float64  `json:"sugars"`
	Protein       float64  `json:"protein"`
	Salt          float64  `json:"salt"`
	Allergens     []string `json:"allergens,omitempty"`
}

// ActivityEntry is one audit log row.
type ActivityEntry struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	UserStatus string    `json:"userStatus,omitempty"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
