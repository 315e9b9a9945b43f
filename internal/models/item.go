package models

// MerchandiseItem is a line of an order. ID is only used to address the
// entry inside its order's list.
type MerchandiseItem struct {
	ID       string `json:"id"`
	ItemCode string `json:"itemCode" validate:"itemcode"`
	ItemName string `json:"itemName" validate:"notblank"`
}
