package packaging

import (
	"testing"

	"stockyard/internal/core/apperror"
)

func TestTotalUnits(t *testing.T) {
	tests := []struct {
		name            string
		packageQty      int
		unitQty         int
		unitsPerPackage int
		want            int64
	}{
		{"packages and loose units", 3, 5, 12, 41},
		{"only packages", 10, 0, 24, 240},
		{"only loose units", 0, 7, 12, 7},
		{"ratio of one", 4, 2, 1, 6},
		{"all zero quantities", 0, 0, 12, 0},
		{"max ratio", 1, 0, MaxUnitsPerPackage, int64(MaxUnitsPerPackage)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalUnits(tt.packageQty, tt.unitQty, tt.unitsPerPackage)
			if err != nil {
				t.Fatalf("TotalUnits failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("TotalUnits mismatch\nwant: %d\ngot:  %d", tt.want, got)
			}
		})
	}
}

func TestTotalUnits_Invalid(t *testing.T) {
	tests := []struct {
		name            string
		packageQty      int
		unitQty         int
		unitsPerPackage int
	}{
		{"negative package quantity", -1, 0, 12},
		{"negative unit quantity", 0, -1, 12},
		{"zero ratio", 1, 1, 0},
		{"negative ratio", 1, 1, -5},
		{"ratio above bound", 1, 0, MaxUnitsPerPackage + 1},
		{"package quantity above bound", MaxQuantity + 1, 0, 12},
		{"unit quantity above bound", 0, MaxQuantity + 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TotalUnits(tt.packageQty, tt.unitQty, tt.unitsPerPackage)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !apperror.IsCode(err, apperror.CodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

// A quantity large enough to wrap int64 multiplication must be
// rejected up front, never recorded as a wrapped-around total.
func TestTotalUnits_HugeQuantityRejected(t *testing.T) {
	_, err := TotalUnits(1_844_674_407_370_956, 0, MaxUnitsPerPackage)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !apperror.IsCode(err, apperror.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name            string
		totalUnits      int64
		unitsPerPackage int
		want            Breakdown
	}{
		{"even split", 240, 12, Breakdown{Packages: 20, RemainingUnits: 0}},
		{"with remainder", 41, 12, Breakdown{Packages: 3, RemainingUnits: 5}},
		{"less than one package", 7, 12, Breakdown{Packages: 0, RemainingUnits: 7}},
		{"ratio of one keeps everything loose", 100, 1, Breakdown{Packages: 0, RemainingUnits: 100}},
		{"ratio of zero keeps everything loose", 100, 0, Breakdown{Packages: 0, RemainingUnits: 100}},
		{"zero units", 0, 12, Breakdown{Packages: 0, RemainingUnits: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decompose(tt.totalUnits, tt.unitsPerPackage)
			if got != tt.want {
				t.Errorf("Decompose mismatch\nwant: %+v\ngot:  %+v", tt.want, got)
			}
		})
	}
}

// Round trip: decomposing a total at the same ratio and collapsing it
// back must reproduce the total.
func TestDecompose_RoundTrip(t *testing.T) {
	ratios := []int{1, 2, 6, 12, 24, 144}
	totals := []int64{0, 1, 5, 12, 41, 239, 240, 1000003}

	for _, ratio := range ratios {
		for _, total := range totals {
			b := Decompose(total, ratio)
			got, err := TotalUnits(int(b.Packages), int(b.RemainingUnits), ratio)
			if err != nil {
				t.Fatalf("round trip failed for total=%d ratio=%d: %v", total, ratio, err)
			}
			if got != total {
				t.Errorf("round trip mismatch for ratio=%d\nwant: %d\ngot:  %d", ratio, total, got)
			}
			if ratio > 1 && b.RemainingUnits >= int64(ratio) {
				t.Errorf("remainder %d not below ratio %d", b.RemainingUnits, ratio)
			}
		}
	}
}
