package frame

import (
	"errors"
	"math"
	"testing"

	"goseg/domain/core"
)

func TestNewFrameValidation(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		cols    map[string][]float64
		wantErr error
	}{
		{
			name: "valid frame",
			ids:  []string{"a", "b"},
			cols: map[string][]float64{"group": {1, 2}, "total": {5, 5}},
		},
		{
			name:    "mismatched column length",
			ids:     []string{"a", "b"},
			cols:    map[string][]float64{"group": {1, 2, 3}},
			wantErr: core.ErrLengthMismatch,
		},
		{
			name:    "empty frame",
			ids:     nil,
			cols:    map[string][]float64{},
			wantErr: core.ErrEmptyFrame,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.ids, tt.cols)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFrameImmutability(t *testing.T) {
	src := []float64{1, 2, 3}
	f, err := New(nil, map[string][]float64{"group": src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src[0] = 99
	got, _ := f.Column("group")
	if got[0] != 1 {
		t.Error("frame aliased caller slice")
	}

	got[1] = 99
	again, _ := f.Column("group")
	if again[1] != 2 {
		t.Error("Column returned internal storage")
	}
}

func TestWithColumnAddsCopy(t *testing.T) {
	f, _ := New([]string{"a", "b"}, map[string][]float64{"total": {10, 20}})

	g, err := f.WithColumn("group", []float64{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.HasColumn("group") {
		t.Error("WithColumn mutated receiver")
	}
	vals, _ := g.Column("group")
	if vals[1] != 4 {
		t.Errorf("expected 4, got %g", vals[1])
	}

	if _, err := f.WithColumn("group", []float64{1}); !errors.Is(err, core.ErrLengthMismatch) {
		t.Errorf("expected length mismatch, got %v", err)
	}
}

func TestTakeResamplesRowsAndGeometry(t *testing.T) {
	f, _ := New([]string{"a", "b", "c"}, map[string][]float64{"group": {1, 2, 3}})
	f, _ = f.WithGeometry(&Geometry{
		Areas:     []float64{10, 20, 30},
		CentroidX: []float64{0, 1, 2},
		CentroidY: []float64{0, 0, 0},
	})

	boot, err := f.Take([]int{2, 2, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals, _ := boot.Column("group")
	if vals[0] != 3 || vals[1] != 3 || vals[2] != 1 {
		t.Errorf("unexpected resampled column: %v", vals)
	}
	if boot.Geometry().Areas[0] != 30 {
		t.Errorf("geometry did not follow rows: %v", boot.Geometry().Areas)
	}
	if boot.UnitID(2) != "a" {
		t.Errorf("unit IDs did not follow rows: %s", boot.UnitID(2))
	}

	if _, err := f.Take([]int{5}); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestCheckCounts(t *testing.T) {
	f, _ := New([]string{"a", "b"}, map[string][]float64{
		"group": {5, 2},
		"total": {4, 10},
	})
	err := f.CheckCounts("group", "total")
	if !errors.Is(err, core.ErrCountExceedsTotal) {
		t.Fatalf("expected count error, got %v", err)
	}

	ok, _ := New(nil, map[string][]float64{
		"group": {1, math.NaN()},
		"total": {4, 10},
	})
	if err := ok.CheckCounts("group", "total"); err != nil {
		t.Fatalf("NaN rows must be skipped, got %v", err)
	}
	if !ok.HasNaN() {
		t.Error("HasNaN missed the NaN")
	}

	if err := f.CheckCounts("missing", "total"); !errors.Is(err, core.ErrColumnNotFound) {
		t.Errorf("expected column error, got %v", err)
	}
}

func TestFingerprintTracksData(t *testing.T) {
	f1, _ := New([]string{"a", "b"}, map[string][]float64{"group": {1, 2}})
	f2, _ := New([]string{"a", "b"}, map[string][]float64{"group": {1, 2}})
	if f1.Fingerprint() != f2.Fingerprint() {
		t.Error("identical frames should share a fingerprint")
	}

	f3, _ := f1.WithColumn("group", []float64{1, 3})
	if f3.Fingerprint() == f1.Fingerprint() {
		t.Error("fingerprint should change with data")
	}
}
