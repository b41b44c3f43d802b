package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/lukaszlap/paragonyOSA/internal/store"
)

type shoppingListResult struct {
	Success     bool                   `json:"success"`
	Action      string                 `json:"action,omitempty"`
	ListID      int64                  `json:"list_id,omitempty"`
	ProductName string                 `json:"product_name,omitempty"`
	Quantity    float64                `json:"quantity,omitempty"`
	Items       []store.ListItemDetail `json:"items,omitempty"`
	Count       int                    `json:"count,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Suggestion  string                 `json:"suggestion,omitempty"`
}

func (e *Executor) manageShoppingList(ctx context.Context, userID int64, a args) (any, error) {
	action := a.str("action")
	listID := a.int64Ptr("list_id")
	productName := a.str("product_name")
	quantity := 1.0
	if f, ok := a.num("quantity"); ok && f > 0 {
		quantity = f
	}

	switch action {
	case "create_list":
		return e.createShoppingList(ctx, userID)
	case "add_item":
		return e.addShoppingItem(ctx, userID, listID, productName, quantity)
	case "get_list":
		return e.getShoppingList(ctx, userID, listID)
	case "remove_item":
		return e.removeShoppingItem(ctx, userID, listID, productName)
	case "delete_list":
		return e.deleteShoppingList(ctx, userID, listID)
	}
	return shoppingListResult{
		Error: fmt.Sprintf("Nieznana akcja: %s. Dostępne: create_list, add_item, remove_item, get_list, delete_list", action),
	}, nil
}

func (e *Executor) createShoppingList(ctx context.Context, userID int64) (any, error) {
	id, err := e.db.CreateList(ctx, userID, "Lista zakupów")
	if err != nil {
		return nil, err
	}
	return shoppingListResult{
		Success: true,
		Action:  "created",
		ListID:  id,
		Message: fmt.Sprintf("Utworzono nową listę zakupów (ID: %d)", id),
	}, nil
}

// resolveListID falls back to the user's newest list. With create set a
// missing list is created on the fly instead of reported. An explicit ID
// must belong to the user; anything else reads as not found.
func (e *Executor) resolveListID(ctx context.Context, userID int64, listID *int64, create bool) (int64, bool, error) {
	if listID != nil {
		owned, err := e.db.ListExists(ctx, userID, *listID)
		if err != nil {
			return 0, false, err
		}
		if !owned {
			return 0, false, nil
		}
		return *listID, true, nil
	}
	id, err := e.db.LatestListID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		if !create {
			return 0, false, nil
		}
		id, err = e.db.CreateList(ctx, userID, "Lista zakupów")
		if err != nil {
			return 0, false, err
		}
		return id, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (e *Executor) addShoppingItem(ctx context.Context, userID int64, listID *int64, productName string, quantity float64) (any, error) {
	if productName == "" {
		return shoppingListResult{Error: "Wymagana nazwa produktu"}, nil
	}
	if quantity <= 0 {
		quantity = 1
	}

	id, ok, err := e.resolveListID(ctx, userID, listID, true)
	if err != nil {
		return nil, err
	}
	if !ok {
		if listID != nil {
			return shoppingListResult{Error: fmt.Sprintf("Nie znaleziono listy o ID %d", *listID)}, nil
		}
		return shoppingListResult{Error: "Nie udało się utworzyć listy zakupów"}, nil
	}

	// A product bought before is linked by ID so list entries track price
	// history; anything unknown lands as free text.
	var productID *int64
	displayName := productName
	if ref, err := e.db.ResolveProduct(ctx, userID, productName); err == nil {
		productID = &ref.ID
		displayName = ref.Name
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	existing, err := e.db.FindListItem(ctx, id, displayName)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	var message string
	if existing != nil {
		if err := e.db.IncrementListItem(ctx, existing.ID, quantity); err != nil {
			return nil, err
		}
		message = fmt.Sprintf("Zwiększono ilość %q na liście do %g", displayName, existing.Quantity+quantity)
	} else {
		if _, err := e.db.AddListItem(ctx, id, productID, displayName, quantity); err != nil {
			return nil, err
		}
		message = fmt.Sprintf("Dodano %q x%g do listy zakupów", displayName, quantity)
	}

	return shoppingListResult{
		Success:     true,
		Action:      "item_added",
		ListID:      id,
		ProductName: displayName,
		Quantity:    quantity,
		Message:     message,
	}, nil
}

func (e *Executor) getShoppingList(ctx context.Context, userID int64, listID *int64) (any, error) {
	id, ok, err := e.resolveListID(ctx, userID, listID, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		if listID != nil {
			return shoppingListResult{Error: fmt.Sprintf("Nie znaleziono listy o ID %d", *listID)}, nil
		}
		return shoppingListResult{
			Error:      "Nie masz żadnych list zakupów",
			Suggestion: "Utwórz nową listę używając akcji create_list",
		}, nil
	}

	items, err := e.db.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return shoppingListResult{
		Success: true,
		Action:  "list_retrieved",
		ListID:  id,
		Items:   items,
		Count:   len(items),
		Message: fmt.Sprintf("Lista zakupów (%d produktów)", len(items)),
	}, nil
}

func (e *Executor) removeShoppingItem(ctx context.Context, userID int64, listID *int64, productName string) (any, error) {
	if productName == "" {
		return shoppingListResult{Error: "Wymagana nazwa produktu"}, nil
	}

	id, ok, err := e.resolveListID(ctx, userID, listID, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		if listID != nil {
			return shoppingListResult{Error: fmt.Sprintf("Nie znaleziono listy o ID %d", *listID)}, nil
		}
		return shoppingListResult{Error: fmt.Sprintf("Nie znaleziono produktu %q na liście", productName)}, nil
	}

	rows, err := e.db.RemoveListItem(ctx, id, productName)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return shoppingListResult{Error: fmt.Sprintf("Nie znaleziono produktu %q na liście", productName)}, nil
	}
	return shoppingListResult{
		Success:     true,
		Action:      "item_removed",
		ProductName: productName,
		Message:     fmt.Sprintf("Usunięto %q z listy zakupów", productName),
	}, nil
}

func (e *Executor) deleteShoppingList(ctx context.Context, userID int64, listID *int64) (any, error) {
	if listID == nil {
		return shoppingListResult{Error: "Wymagane ID listy do usunięcia"}, nil
	}

	rows, err := e.db.DeleteList(ctx, userID, *listID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return shoppingListResult{Error: fmt.Sprintf("Nie znaleziono listy o ID %d", *listID)}, nil
	}
	return shoppingListResult{
		Success: true,
		Action:  "list_deleted",
		ListID:  *listID,
		Message: "Usunięto listę zakupów",
	}, nil
}
