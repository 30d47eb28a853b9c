package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tripgate/portal-api/internal/ports"
)

// RelationshipRepo answers which customer folders a partner agent may
// reach. Rows are managed out of band by account administration; this
// repo only reads.
type RelationshipRepo struct {
	pool *pgxpool.Pool
}

var _ ports.RelationshipDirectory = (*RelationshipRepo)(nil)

// NewRelationshipRepo creates a new RelationshipRepo.
func NewRelationshipRepo(pool *pgxpool.Pool) *RelationshipRepo {
	return &RelationshipRepo{pool: pool}
}

// EnsureSchema creates the relationship table when it does not exist.
func (r *RelationshipRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS agent_customer_relationships (
			agent_email TEXT NOT NULL,
			customer_folder TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (agent_email, customer_folder)
		)
	`)
	return err
}

// CustomersFor returns the customer folder segments assigned to the agent.
// An agent with no assignments gets an empty slice, not an error.
func (r *RelationshipRepo) CustomersFor(ctx context.Context, agentEmail string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT customer_folder
		FROM agent_customer_relationships
		WHERE agent_email = $1
		ORDER BY customer_folder
	`, strings.ToLower(strings.TrimSpace(agentEmail)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowTo[string])
}
