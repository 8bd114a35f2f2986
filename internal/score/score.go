// Package score computes the star tier and coin reward for a completed
// level attempt.
package score

// Result is the outcome of a completed attempt.
type Result struct {
	Elapsed float64 // seconds between movement unlock and door trigger
	Stars   int     // 1..3
	Coins   int     // reward paid into the session balance
}

// Grade maps elapsed seconds to a Result. Under 90 seconds earns 3 stars
// and 150 coins, under 150 seconds 2 stars and 75 coins, anything slower
// 1 star and 50 coins.
func Grade(elapsed float64) Result {
	r := Result{Elapsed: elapsed}
	switch {
	case elapsed < 90:
		r.Stars, r.Coins = 3, 150
	case elapsed < 150:
		r.Stars, r.Coins = 2, 75
	default:
		r.Stars, r.Coins = 1, 50
	}
	return r
}
