package settlement

import (
	"math"
)

// ComputeSplit divides a price between platform commission and vendor
// earnings. ratePercent is the business's commission percentage at
// settlement time, passed in explicitly so the computation stays pure.
// One rounding step; earnings absorb the remainder so the two parts always
// sum back to price.
func ComputeSplit(price int64, ratePercent float64) (commission, earnings int64) {
	commission = int64(math.Round(float64(price) * ratePercent / 100))
	earnings = price - commission
	return commission, earnings
}
