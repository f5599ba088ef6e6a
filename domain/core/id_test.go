package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
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

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestSessionIDIsEmpty tests session ID emptiness check
func TestSessionIDIsEmpty(t *testing.T) {
	if !SessionID("").IsEmpty() {
		t.Error("Expected empty session ID to be empty")
	}
	if NewSessionID().IsEmpty() {
		t.Error("Expected fresh session ID to not be empty")
	}
}

// TestParseSessionID tests session ID parsing
func TestParseSessionID(t *testing.T) {
	fresh := NewSessionID()
	tests := []struct {
		input    string
		expected SessionID
		hasError bool
	}{
		{fresh.String(), fresh, false},
		{"  " + strings.ToUpper(fresh.String()) + " ", fresh, false},
		{"", "", true},
		{"   ", "", true},
		{"not-a-uuid", "", true},
	}

	for _, tt := range tests {
		result, err := ParseSessionID(tt.input)
		if tt.hasError {
			if err == nil {
				t.Errorf("ParseSessionID(%q) expected error, got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSessionID(%q) unexpected error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("ParseSessionID(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

// TestComputeViewHash tests that the fingerprint depends on every part and their order
func TestComputeViewHash(t *testing.T) {
	a := ComputeViewHash("sig", "criteria", "overview")
	if a != ComputeViewHash("sig", "criteria", "overview") {
		t.Error("Expected identical inputs to hash identically")
	}
	if a == ComputeViewHash("sig", "overview", "criteria") {
		t.Error("Expected part order to change the hash")
	}
	if a == ComputeViewHash("sigcriteria", "overview") {
		t.Error("Expected part boundaries to change the hash")
	}
	if len(a.Short()) != 16 {
		t.Errorf("Expected 16 character short hash, got %q", a.Short())
	}
}

// TestTimestampJSON tests Timestamp marshals like time.Time
func TestTimestampJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-01T12:00:00Z"` {
		t.Errorf("unexpected JSON %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Time().Equal(ts.Time()) {
		t.Errorf("round trip changed time: %v", back)
	}
	if !ts.Add(time.Minute).After(ts) {
		t.Error("Expected Add to move forward")
	}
}
