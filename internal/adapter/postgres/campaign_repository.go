package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"collabpay/internal/core/domain"
)

// CampaignRepository implements port.CampaignRepository using pgxpool.
// Operations that touch escrow or status run as serializable
// transactions that lock the campaign row with SELECT ... FOR UPDATE, so
// the check-and-debit is a single atomic read-modify-write per campaign
// aggregate.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func (r *CampaignRepository) beginSerializable(ctx context.Context) (pgx.Tx, error) {
	return r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
}

const campaignColumns = `campaign_id, brand_id, brand_owner, category,
       application_start, application_end, campaign_start, campaign_end,
       base_pay, total_budget, escrow_balance,
       cpm_likes, cpm_views, cpm_retweets, cpm_comments, cpm_link_clicks,
       status, winners, max_winners, created_at, updated_at`

type campaignRow interface {
	Scan(dest ...any) error
}

func scanCampaign(row campaignRow) (*domain.Campaign, error) {
	var (
		c                                          domain.Campaign
		basePay, totalBudget, escrow               int64
		likes, views, retweets, comments, linkClks int64
		status                                     string
	)
	err := row.Scan(
		&c.ID, &c.BrandID, &c.BrandOwner, &c.Category,
		&c.Schedule.ApplicationStart, &c.Schedule.ApplicationEnd,
		&c.Schedule.CampaignStart, &c.Schedule.CampaignEnd,
		&basePay, &totalBudget, &escrow,
		&likes, &views, &retweets, &comments, &linkClks,
		&status, &c.Winners, &c.MaxWinners, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.BasePay = domain.Amount(basePay)
	c.TotalBudget = domain.Amount(totalBudget)
	c.Escrow = domain.Amount(escrow)
	c.Rates = domain.CPMRates{
		Likes:      domain.Amount(likes),
		Views:      domain.Amount(views),
		Retweets:   domain.Amount(retweets),
		Comments:   domain.Amount(comments),
		LinkClicks: domain.Amount(linkClks),
	}
	c.Status = domain.CampaignStatus(status)
	return &c, nil
}

// CreateCampaign debits the brand balance and inserts the campaign in
// one transaction. The primary key on campaigns enforces id uniqueness.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) (err error) {
	tx, err := r.beginSerializable(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()
	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM brand_accounts WHERE brand_id = $1 FOR UPDATE`, c.BrandID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("brand %s: %w", c.BrandID, domain.ErrNotFound)
		return err
	}
	if err != nil {
		return err
	}
	if _, serr := domain.Amount(balance).CheckedSub(c.TotalBudget); serr != nil {
		err = fmt.Errorf("brand %s balance %d, budget %d: %w", c.BrandID, balance, c.TotalBudget, domain.ErrInsufficientFunds)
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE brand_accounts SET balance = balance - $1 WHERE brand_id = $2`, int64(c.TotalBudget), c.BrandID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO campaigns
        (campaign_id, brand_id, brand_owner, category,
         application_start, application_end, campaign_start, campaign_end,
         base_pay, total_budget, escrow_balance,
         cpm_likes, cpm_views, cpm_retweets, cpm_comments, cpm_link_clicks,
         status, winners, max_winners, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		c.ID, c.BrandID, c.BrandOwner, c.Category,
		c.Schedule.ApplicationStart, c.Schedule.ApplicationEnd,
		c.Schedule.CampaignStart, c.Schedule.CampaignEnd,
		int64(c.BasePay), int64(c.TotalBudget), int64(c.Escrow),
		int64(c.Rates.Likes), int64(c.Rates.Views), int64(c.Rates.Retweets),
		int64(c.Rates.Comments), int64(c.Rates.LinkClicks),
		string(c.Status), c.Winners, c.MaxWinners, c.CreatedAt, c.UpdatedAt)
	if pgErrCode(err) == pgUniqueViolation {
		err = fmt.Errorf("campaign %s: %w", c.ID, domain.ErrDuplicateID)
	}
	return err
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE campaign_id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) lockCampaign(ctx context.Context, tx pgx.Tx, id string) (*domain.Campaign, error) {
	row := tx.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE campaign_id = $1 FOR UPDATE`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return c, err
}

// UpdateCampaignStatus applies a status transition under the row lock.
func (r *CampaignRepository) UpdateCampaignStatus(ctx context.Context, campaignID string, next domain.CampaignStatus) (out *domain.Campaign, err error) {
	tx, err := r.beginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()
	c, err := r.lockCampaign(ctx, tx, campaignID)
	if err != nil {
		return nil, err
	}
	if !c.Status.CanTransitionTo(next) {
		err = fmt.Errorf("campaign %s: %s -> %s: %w", campaignID, c.Status, next, domain.ErrInvalidState)
		return nil, err
	}
	_, err = tx.Exec(ctx, `UPDATE campaigns SET status = $1, updated_at = now() WHERE campaign_id = $2`, string(next), campaignID)
	if err != nil {
		return nil, err
	}
	c.Status = next
	return c, nil
}

// CompleteWithWinners validates the winner list against the applicant
// set inside the transaction, then stores it and completes the campaign.
func (r *CampaignRepository) CompleteWithWinners(ctx context.Context, campaignID string, winners []string) (out *domain.Campaign, err error) {
	tx, err := r.beginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()
	c, err := r.lockCampaign(ctx, tx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.Status.Terminal() {
		err = fmt.Errorf("campaign %s is %s: %w", campaignID, c.Status, domain.ErrInvalidState)
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT creator_id FROM applications WHERE campaign_id = $1`, campaignID)
	if err != nil {
		return nil, err
	}
	applicants := map[string]struct{}{}
	var creatorID string
	_, err = pgx.ForEachRow(rows, []any{&creatorID}, func() error {
		applicants[creatorID] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err = c.ValidateWinners(winners, func(id string) bool {
		_, ok := applicants[id]
		return ok
	}); err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, `UPDATE campaigns SET winners = $1, status = $2, updated_at = now() WHERE campaign_id = $3`,
		winners, string(domain.CampaignCompleted), campaignID)
	if err != nil {
		return nil, err
	}
	c.Winners = append([]string(nil), winners...)
	c.Status = domain.CampaignCompleted
	return c, nil
}
