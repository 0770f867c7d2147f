package repo

import (
	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"

	"github.com/murkotick/catalog-service/internal/app/account/domain"
	"github.com/murkotick/catalog-service/internal/models/m_account"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
	"github.com/murkotick/catalog-service/internal/pkg/docstore"
)

const CollectionName = m_account.TableName

// Schema describes account documents.
func Schema() docstore.Schema[domain.Account] {
	return docstore.Schema[domain.Account]{
		Name:  CollectionName,
		ID:    func(a *domain.Account) string { return a.ID },
		SetID: func(a *domain.Account, id string) { a.ID = id },
		Fields: map[string]func(*domain.Account) (string, bool){
			domain.FieldName: func(a *domain.Account) (string, bool) {
				if a.Name == nil {
					return "", false
				}
				return *a.Name, true
			},
		},
		Audit: domain.Audit,
	}
}

func NewMemory(clk clock.Clock) (*docstore.Memory[domain.Account], error) {
	return docstore.NewMemory(Schema(), clk)
}

func NewRedis(client redis.UniversalClient, prefix string, clk clock.Clock) (*docstore.Redis[domain.Account], error) {
	return docstore.NewRedis(client, prefix, Schema(), clk)
}

func NewSpanner(client *spanner.Client, clk clock.Clock) (*docstore.Spanner[domain.Account], error) {
	return docstore.NewSpanner(client, Schema(), m_account.Codec(), clk)
}
