package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"collabpay/internal/core/domain"
)

// PublishContentAndPayBase runs the Accepted->Published transition and
// the base payment as one transaction: campaign row locked first, then
// the content row; escrow check-and-debit, status flip, receipt insert
// and creator earnings credit all commit together or not at all.
func (r *CampaignRepository) PublishContentAndPayBase(ctx context.Context, campaignID, contentID string, ts int64, receipt *domain.PaymentReceipt) (out *domain.Content, err error) {
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
	ct, err := r.lockContent(ctx, tx, campaignID, contentID)
	if err != nil {
		return nil, err
	}
	prev := ct.Status
	if err = ct.Publish(ts); err != nil {
		err = fmt.Errorf("publish content %s in status %s: %w", contentID, prev, err)
		return nil, err
	}
	if _, serr := c.Escrow.CheckedSub(c.BasePay); serr != nil {
		err = fmt.Errorf("escrow %d, base pay %d: %w", c.Escrow, c.BasePay, domain.ErrInsufficientEscrow)
		return nil, err
	}
	if err = r.payOut(ctx, tx, campaignID, ct.CreatorID, c.BasePay, receipt); err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, `UPDATE content SET status = $1, published_at = $2, updated_at = now()
        WHERE campaign_id = $3 AND content_id = $4`,
		string(ct.Status), ct.PublishedAt, campaignID, contentID)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

// PayBonus recomputes the bonus from the engagement snapshot under the
// campaign row lock. A zero bonus rolls back with no writes and no
// receipt; a positive bonus debits escrow, marks the content paid and
// mints the receipt.
func (r *CampaignRepository) PayBonus(ctx context.Context, campaignID, contentID string, ts int64, receiptID, txRef string) (out *domain.PaymentReceipt, err error) {
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
	ct, err := r.lockContent(ctx, tx, campaignID, contentID)
	if err != nil {
		return nil, err
	}
	if ct.Status != domain.ContentPublished {
		err = fmt.Errorf("bonus for content %s in status %s: %w", contentID, ct.Status, domain.ErrInvalidState)
		return nil, err
	}
	if ct.BonusPaid {
		err = fmt.Errorf("content %s: %w", contentID, domain.ErrBonusAlreadyPaid)
		return nil, err
	}
	if !c.IsWinner(ct.CreatorID) {
		err = fmt.Errorf("creator %s: %w", ct.CreatorID, domain.ErrNotAWinner)
		return nil, err
	}
	bonus := domain.ComputeBonus(c.Rates, ct.Engagement)
	if bonus.IsZero() {
		// deliberate no-op: no debit, no receipt; the transaction made
		// no writes so the commit is empty
		return nil, nil
	}
	if _, serr := c.Escrow.CheckedSub(bonus); serr != nil {
		err = fmt.Errorf("escrow %d, bonus %d: %w", c.Escrow, bonus, domain.ErrInsufficientEscrow)
		return nil, err
	}
	receipt := &domain.PaymentReceipt{
		ID:          receiptID,
		Kind:        domain.PaymentBonus,
		Amount:      bonus,
		CampaignID:  campaignID,
		ContentID:   contentID,
		CreatorID:   ct.CreatorID,
		CreatorAddr: ct.CreatorOwner,
		Description: fmt.Sprintf("bonus pay for content %s on campaign %s", contentID, campaignID),
		TxRef:       txRef,
		PaidAt:      ts,
	}
	if err = r.payOut(ctx, tx, campaignID, ct.CreatorID, bonus, receipt); err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, `UPDATE content SET bonus_paid = true, updated_at = now()
        WHERE campaign_id = $1 AND content_id = $2`, campaignID, contentID)
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// payOut is the single code path through which money leaves escrow:
// debit the campaign row, credit the creator and insert the receipt,
// all on the caller's transaction.
func (r *CampaignRepository) payOut(ctx context.Context, tx pgx.Tx, campaignID, creatorID string, amount domain.Amount, receipt *domain.PaymentReceipt) error {
	tag, err := tx.Exec(ctx, `UPDATE campaigns SET escrow_balance = escrow_balance - $1, updated_at = now()
        WHERE campaign_id = $2 AND escrow_balance >= $1`, int64(amount), campaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s debit %d: %w", campaignID, amount, domain.ErrInsufficientEscrow)
	}
	tag, err = tx.Exec(ctx, `UPDATE creator_accounts SET balance = balance + $1, total_earnings = total_earnings + $1
        WHERE creator_id = $2`, int64(amount), creatorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("creator %s: %w", creatorID, domain.ErrNotFound)
	}
	_, err = tx.Exec(ctx, `INSERT INTO payment_receipts
        (receipt_id, kind, amount, campaign_id, content_id, creator_id, creator_addr, description, tx_ref, paid_at, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now())`,
		receipt.ID, string(receipt.Kind), int64(receipt.Amount), receipt.CampaignID, receipt.ContentID,
		receipt.CreatorID, receipt.CreatorAddr, receipt.Description, receipt.TxRef, receipt.PaidAt)
	return err
}

// ListReceipts returns every receipt issued for a campaign in payment
// order.
func (r *CampaignRepository) ListReceipts(ctx context.Context, campaignID string) ([]domain.PaymentReceipt, error) {
	rows, err := r.pool.Query(ctx, `SELECT receipt_id, kind, amount, campaign_id, content_id, creator_id, creator_addr, description, tx_ref, paid_at, created_at
        FROM payment_receipts WHERE campaign_id = $1 ORDER BY paid_at, created_at`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PaymentReceipt, error) {
		var (
			rc     domain.PaymentReceipt
			kind   string
			amount int64
		)
		err := row.Scan(&rc.ID, &kind, &amount, &rc.CampaignID, &rc.ContentID, &rc.CreatorID,
			&rc.CreatorAddr, &rc.Description, &rc.TxRef, &rc.PaidAt, &rc.CreatedAt)
		rc.Kind = domain.PaymentKind(kind)
		rc.Amount = domain.Amount(amount)
		return rc, err
	})
}
