package m_account

// Field constants for the accounts table.
const (
	TableName = "accounts"

	ColAccountID  = "account_id"
	ColName       = "name"
	ColCreatedAt  = "created_at"
	ColModifiedAt = "modified_at"
)

var Columns = []string{ColAccountID, ColName, ColCreatedAt, ColModifiedAt}
