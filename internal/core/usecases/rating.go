package usecases

import "github.com/samirrijal/restroomfinder/internal/core/domain"

// PositiveRatingThreshold is the minimum percentage for a "positively rated" restroom.
const PositiveRatingThreshold = 70

// PercentPositive returns floor(up / (up+down) * 100), or nil when either
// count is missing, negative, or both are zero.
func PercentPositive(upvotes, downvotes *int) *int {
	if upvotes == nil || downvotes == nil {
		return nil
	}
	up, down := *upvotes, *downvotes
	if up < 0 || down < 0 || up+down == 0 {
		return nil
	}
	pct := up * 100 / (up + down)
	return &pct
}

// IsPositivelyRated reports whether the record's rating meets the threshold.
func IsPositivelyRated(r domain.RestroomRecord) bool {
	return r.PositiveRatingPercent != nil && *r.PositiveRatingPercent >= PositiveRatingThreshold
}
