package domain

import "time"

// BrandAccount is the minimal brand row the engine needs: ownership for
// authorization checks and a spendable balance that campaign budgets are
// drawn from. Full brand profiles live in the registration subsystem.
type BrandAccount struct {
	ID        string
	Owner     string
	Balance   Amount
	CreatedAt time.Time
}

// CreatorAccount mirrors BrandAccount for creators, plus a cumulative
// earnings counter incremented by every payment.
type CreatorAccount struct {
	ID            string
	Owner         string
	Balance       Amount
	TotalEarnings Amount
	CreatedAt     time.Time
}
