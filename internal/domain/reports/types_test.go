package reports

import (
	"testing"
)

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		minStock int64
		want     StockStatus
	}{
		{"zero is out", 0, 10, StatusOut},
		{"zero with zero threshold is out", 0, 0, StatusOut},
		{"at threshold is low", 10, 10, StatusLow},
		{"below threshold is low", 5, 10, StatusLow},
		{"above threshold is ok", 11, 10, StatusOK},
		{"positive with zero threshold is ok", 1, 0, StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStock(tt.quantity, tt.minStock); got != tt.want {
				t.Errorf("ClassifyStock(%d, %d) = %s, want %s", tt.quantity, tt.minStock, got, tt.want)
			}
		})
	}
}
