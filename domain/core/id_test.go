package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

func TestParseRunID(t *testing.T) {
	if _, err := ParseRunID("   "); err == nil {
		t.Error("Expected error for blank run ID")
	}
	id, err := ParseRunID("run-42")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.String() != "run-42" {
		t.Errorf("Expected 'run-42', got '%s'", id)
	}
}

func TestFrameFingerprintDeterminism(t *testing.T) {
	ids := []string{"a", "b", "c"}
	cols := map[string][]float64{
		"group": {1, 2, 3},
		"total": {10, 20, 30},
	}

	fp1 := ComputeFrameFingerprint(ids, cols)
	fp2 := ComputeFrameFingerprint(ids, cols)
	if fp1 != fp2 {
		t.Errorf("Fingerprint not deterministic: %s vs %s", fp1, fp2)
	}

	cols["group"][0] = 1.5
	fp3 := ComputeFrameFingerprint(ids, cols)
	if fp3 == fp1 {
		t.Error("Fingerprint did not change with data")
	}
}
