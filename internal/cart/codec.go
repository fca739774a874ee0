package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"lilutecno/internal/domain"
)

var ErrDecode = errors.New("cart: malformed stored cart")

// Encode serializes the line items in display order.
func Encode(items []domain.CartItem) (string, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses text produced by Encode.
func Decode(text string) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}
