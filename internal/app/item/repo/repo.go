package repo

import (
	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"

	"github.com/murkotick/catalog-service/internal/app/item/domain"
	"github.com/murkotick/catalog-service/internal/models/m_item"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
	"github.com/murkotick/catalog-service/internal/pkg/docstore"
)

// CollectionName is the collection items live in.
const CollectionName = m_item.TableName

// Schema describes item documents, including the audit hook every store
// runs before a write.
func Schema() docstore.Schema[domain.Item] {
	return docstore.Schema[domain.Item]{
		Name:  CollectionName,
		ID:    func(it *domain.Item) string { return it.ID },
		SetID: func(it *domain.Item, id string) { it.ID = id },
		Fields: map[string]func(*domain.Item) (string, bool){
			domain.FieldName:     func(it *domain.Item) (string, bool) { return deref(it.Name) },
			domain.FieldCategory: func(it *domain.Item) (string, bool) { return deref(it.Category) },
		},
		Audit: domain.Audit,
	}
}

func NewMemory(clk clock.Clock) (*docstore.Memory[domain.Item], error) {
	return docstore.NewMemory(Schema(), clk)
}

func NewRedis(client redis.UniversalClient, prefix string, clk clock.Clock) (*docstore.Redis[domain.Item], error) {
	return docstore.NewRedis(client, prefix, Schema(), clk)
}

func NewSpanner(client *spanner.Client, clk clock.Clock) (*docstore.Spanner[domain.Item], error) {
	return docstore.NewSpanner(client, Schema(), m_item.Codec(), clk)
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
