package m_item

// Field constants for the items table.
const (
	TableName = "items"

	ColItemID         = "item_id"
	ColName           = "name"
	ColCategory       = "category"
	ColCode           = "code"
	ColQuantityOnHand = "quantity_on_hand"
	ColPrice          = "price"
	ColCreatedAt      = "created_at"
	ColModifiedAt     = "modified_at"
)

// Columns is the canonical column order used for reads and writes.
var Columns = []string{
	ColItemID,
	ColName,
	ColCategory,
	ColCode,
	ColQuantityOnHand,
	ColPrice,
	ColCreatedAt,
	ColModifiedAt,
}
