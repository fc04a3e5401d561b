package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name       string
		price      int64
		rate       float64
		commission int64
		earnings   int64
	}{
		{"standard rate", 1000, 15, 150, 850},
		{"zero rate", 1000, 0, 0, 1000},
		{"full rate", 1000, 100, 1000, 0},
		{"rounds half up", 999, 15, 150, 849},
		{"rounds down", 333, 10, 33, 300},
		{"fractional rate", 1000, 12.5, 125, 875},
		{"tiny price", 1, 15, 0, 1},
		{"zero price", 0, 15, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commission, earnings := ComputeSplit(tt.price, tt.rate)
			assert.Equal(t, tt.commission, commission)
			assert.Equal(t, tt.earnings, earnings)
			assert.Equal(t, tt.price, commission+earnings, "split must sum back to price")
		})
	}
}
