package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full set of pgx-backed repositories over a
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CategoryRepo: NewPgxCategoryRepository(pool),
		LedgerRepo:   NewPgxLedgerRepository(pool),
		ResidentRepo: NewPgxResidentRepository(pool),
		ProfileRepo:  NewPgxFinancialProfileRepository(pool),
		UserRepo:     NewPgxUserRepository(pool),
		SnapshotRepo: NewPgxSnapshotRepository(pool),
	}
}
