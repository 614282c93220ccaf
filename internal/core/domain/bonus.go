package domain

// ComputeBonus returns the CPM-weighted bonus for an engagement
// snapshot: for each metric, floor(counter/100) times the per-hundred
// rate. Integer division truncates, so a counter below 100 contributes
// nothing for that metric. Pure: same inputs, same output, no side
// effects.
func ComputeBonus(rates CPMRates, m Engagement) Amount {
	var total Amount
	total += Amount(m.Likes/100) * rates.Likes
	total += Amount(m.Views/100) * rates.Views
	total += Amount(m.Retweets/100) * rates.Retweets
	total += Amount(m.Comments/100) * rates.Comments
	total += Amount(m.LinkClicks/100) * rates.LinkClicks
	return total
}
