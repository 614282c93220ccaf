package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"collabpay/internal/core/domain"
)

const contentColumns = `content_id, campaign_id, creator_id, creator_owner, link, status,
       likes, views, retweets, comments, link_clicks,
       review_notes, bonus_paid, submitted_at, reviewed_at, published_at,
       metrics_set_at, created_at, updated_at`

func scanContent(row campaignRow) (*domain.Content, error) {
	var (
		ct     domain.Content
		status string
	)
	err := row.Scan(
		&ct.ID, &ct.CampaignID, &ct.CreatorID, &ct.CreatorOwner, &ct.Link, &status,
		&ct.Engagement.Likes, &ct.Engagement.Views, &ct.Engagement.Retweets,
		&ct.Engagement.Comments, &ct.Engagement.LinkClicks,
		&ct.ReviewNotes, &ct.BonusPaid, &ct.SubmittedAt, &ct.ReviewedAt, &ct.PublishedAt,
		&ct.MetricsSetAt, &ct.CreatedAt, &ct.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ct.Status = domain.ContentStatus(status)
	return &ct, nil
}

// CreateApplication inserts an application; the composite primary key
// (campaign_id, creator_id) enforces one application per creator.
func (r *CampaignRepository) CreateApplication(ctx context.Context, app *domain.Application) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO applications
        (campaign_id, creator_id, creator_owner, accepted, content_plan, submitted_at, responded_at, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		app.CampaignID, app.CreatorID, app.CreatorOwner, app.Accepted, app.ContentPlan,
		app.SubmittedAt, app.RespondedAt, app.CreatedAt)
	switch pgErrCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("creator %s on campaign %s: %w", app.CreatorID, app.CampaignID, domain.ErrAlreadyApplied)
	case pgFKViolation:
		return fmt.Errorf("campaign %s: %w", app.CampaignID, domain.ErrNotFound)
	}
	return err
}

// GetApplication returns one creator's application on a campaign.
func (r *CampaignRepository) GetApplication(ctx context.Context, campaignID, creatorID string) (*domain.Application, error) {
	var app domain.Application
	err := r.pool.QueryRow(ctx, `SELECT campaign_id, creator_id, creator_owner, accepted, content_plan, submitted_at, responded_at, created_at
        FROM applications WHERE campaign_id = $1 AND creator_id = $2`, campaignID, creatorID).
		Scan(&app.CampaignID, &app.CreatorID, &app.CreatorOwner, &app.Accepted, &app.ContentPlan,
			&app.SubmittedAt, &app.RespondedAt, &app.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("application by %s on campaign %s: %w", creatorID, campaignID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplications returns the applications filed on a campaign in
// submission order.
func (r *CampaignRepository) ListApplications(ctx context.Context, campaignID string) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, `SELECT campaign_id, creator_id, creator_owner, accepted, content_plan, submitted_at, responded_at, created_at
        FROM applications WHERE campaign_id = $1 ORDER BY submitted_at`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Application, error) {
		var app domain.Application
		err := row.Scan(&app.CampaignID, &app.CreatorID, &app.CreatorOwner, &app.Accepted, &app.ContentPlan,
			&app.SubmittedAt, &app.RespondedAt, &app.CreatedAt)
		return app, err
	})
}

// CreateContent registers pending content under the submitting creator.
func (r *CampaignRepository) CreateContent(ctx context.Context, ct *domain.Content) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO content
        (content_id, campaign_id, creator_id, creator_owner, link, status,
         likes, views, retweets, comments, link_clicks,
         review_notes, bonus_paid, submitted_at, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		ct.ID, ct.CampaignID, ct.CreatorID, ct.CreatorOwner, ct.Link, string(ct.Status),
		ct.Engagement.Likes, ct.Engagement.Views, ct.Engagement.Retweets,
		ct.Engagement.Comments, ct.Engagement.LinkClicks,
		ct.ReviewNotes, ct.BonusPaid, ct.SubmittedAt, ct.CreatedAt, ct.UpdatedAt)
	switch pgErrCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("content %s: %w", ct.ID, domain.ErrDuplicateID)
	case pgFKViolation:
		return fmt.Errorf("campaign %s: %w", ct.CampaignID, domain.ErrNotFound)
	}
	return err
}

// GetContent returns content by id within a campaign.
func (r *CampaignRepository) GetContent(ctx context.Context, campaignID, contentID string) (*domain.Content, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+contentColumns+` FROM content WHERE campaign_id = $1 AND content_id = $2`, campaignID, contentID)
	ct, err := scanContent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("content %s: %w", contentID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return ct, nil
}

// ListContent returns all content submitted to a campaign.
func (r *CampaignRepository) ListContent(ctx context.Context, campaignID string) ([]domain.Content, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contentColumns+` FROM content WHERE campaign_id = $1 ORDER BY submitted_at`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Content, error) {
		ct, err := scanContent(row)
		if err != nil {
			return domain.Content{}, err
		}
		return *ct, nil
	})
}

func (r *CampaignRepository) lockContent(ctx context.Context, tx pgx.Tx, campaignID, contentID string) (*domain.Content, error) {
	row := tx.QueryRow(ctx, `SELECT `+contentColumns+` FROM content WHERE campaign_id = $1 AND content_id = $2 FOR UPDATE`, campaignID, contentID)
	ct, err := scanContent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("content %s: %w", contentID, domain.ErrNotFound)
	}
	return ct, err
}

// ReviewContent applies the brand's accept/reject decision to pending
// content.
func (r *CampaignRepository) ReviewContent(ctx context.Context, campaignID, contentID string, approve bool, notes string, ts int64) (out *domain.Content, err error) {
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
	ct, err := r.lockContent(ctx, tx, campaignID, contentID)
	if err != nil {
		return nil, err
	}
	prev := ct.Status
	if err = ct.Review(approve, notes, ts); err != nil {
		err = fmt.Errorf("review content %s in status %s: %w", contentID, prev, err)
		return nil, err
	}
	_, err = tx.Exec(ctx, `UPDATE content SET status = $1, review_notes = $2, reviewed_at = $3, updated_at = now()
        WHERE campaign_id = $4 AND content_id = $5`,
		string(ct.Status), ct.ReviewNotes, ct.ReviewedAt, campaignID, contentID)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

// SetEngagement overwrites the metric counters of published content.
func (r *CampaignRepository) SetEngagement(ctx context.Context, campaignID, contentID string, m domain.Engagement, ts int64) (out *domain.Content, err error) {
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
	ct, err := r.lockContent(ctx, tx, campaignID, contentID)
	if err != nil {
		return nil, err
	}
	prev := ct.Status
	if err = ct.SetEngagement(m, ts); err != nil {
		err = fmt.Errorf("engagement on content %s in status %s: %w", contentID, prev, err)
		return nil, err
	}
	_, err = tx.Exec(ctx, `UPDATE content SET likes = $1, views = $2, retweets = $3, comments = $4, link_clicks = $5,
        metrics_set_at = $6, updated_at = now()
        WHERE campaign_id = $7 AND content_id = $8`,
		m.Likes, m.Views, m.Retweets, m.Comments, m.LinkClicks, ct.MetricsSetAt, campaignID, contentID)
	if err != nil {
		return nil, err
	}
	return ct, nil
}
