package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"collabpay/internal/core/domain"
)

// AccountRepository implements port.AccountDirectory on PostgreSQL. The
// primary keys on brand_accounts and creator_accounts are the global
// uniqueness registry for human-chosen ids.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a new repository instance.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) GetBrand(ctx context.Context, id string) (*domain.BrandAccount, error) {
	var (
		b       domain.BrandAccount
		balance int64
	)
	err := r.pool.QueryRow(ctx, `SELECT brand_id, owner_address, balance, created_at FROM brand_accounts WHERE brand_id = $1`, id).
		Scan(&b.ID, &b.Owner, &balance, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("brand %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	b.Balance = domain.Amount(balance)
	return &b, nil
}

func (r *AccountRepository) GetCreator(ctx context.Context, id string) (*domain.CreatorAccount, error) {
	var (
		c                 domain.CreatorAccount
		balance, earnings int64
	)
	err := r.pool.QueryRow(ctx, `SELECT creator_id, owner_address, balance, total_earnings, created_at FROM creator_accounts WHERE creator_id = $1`, id).
		Scan(&c.ID, &c.Owner, &balance, &earnings, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("creator %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	c.Balance = domain.Amount(balance)
	c.TotalEarnings = domain.Amount(earnings)
	return &c, nil
}

func (r *AccountRepository) CreateBrand(ctx context.Context, b *domain.BrandAccount) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO brand_accounts (brand_id, owner_address, balance, created_at) VALUES ($1,$2,$3,$4)`,
		b.ID, b.Owner, int64(b.Balance), b.CreatedAt)
	if pgErrCode(err) == pgUniqueViolation {
		return fmt.Errorf("brand %s: %w", b.ID, domain.ErrDuplicateID)
	}
	return err
}

func (r *AccountRepository) CreateCreator(ctx context.Context, c *domain.CreatorAccount) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO creator_accounts (creator_id, owner_address, balance, total_earnings, created_at) VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Owner, int64(c.Balance), int64(c.TotalEarnings), c.CreatedAt)
	if pgErrCode(err) == pgUniqueViolation {
		return fmt.Errorf("creator %s: %w", c.ID, domain.ErrDuplicateID)
	}
	return err
}
