package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestAssignedByTechnician_FoldsAttributionsAndReprises(t *testing.T) {
	entries := []AttributionEntry{
		{Action: ActionAttribution, Quantity: 10, ToUserID: uintPtr(7), Status: StatusCommitted},
		{Action: ActionAttribution, Quantity: 5, ToUserID: uintPtr(7), Status: StatusCommitted},
		{Action: ActionReprise, Quantity: 3, ToUserID: uintPtr(7), Status: StatusCommitted},
		{Action: ActionAttribution, Quantity: 2, ToUserID: uintPtr(9), Status: StatusCommitted},
	}

	totals := AssignedByTechnician(entries)

	if got := totals[7]; got != 12 {
		t.Errorf("Expected technician 7 to hold 12, got %v", got)
	}
	if got := totals[9]; got != 2 {
		t.Errorf("Expected technician 9 to hold 2, got %v", got)
	}
}

func TestAssignedByTechnician_SkipsCanceledEntries(t *testing.T) {
	entries := []AttributionEntry{
		{Action: ActionAttribution, Quantity: 10, ToUserID: uintPtr(7), Status: StatusCommitted},
		{Action: ActionAttribution, Quantity: 5, ToUserID: uintPtr(7), Status: StatusCanceled},
	}

	if got := AssignedTo(entries, 7); got != 10 {
		t.Errorf("Expected canceled entry to be excluded, got holding %v", got)
	}
}

func TestAssignedByTechnician_SkipsMalformedEntries(t *testing.T) {
	entries := []AttributionEntry{
		{Action: ActionAttribution, Quantity: 10, ToUserID: uintPtr(7), Status: StatusCommitted},
		// No technician attached
		{Action: ActionAttribution, Quantity: 4, ToUserID: nil, Status: StatusCommitted},
		// Garbage quantity decoded as NaN
		{Action: ActionAttribution, Quantity: Quantity(math.NaN()), ToUserID: uintPtr(7), Status: StatusCommitted},
		// Non-positive quantity
		{Action: ActionAttribution, Quantity: -2, ToUserID: uintPtr(7), Status: StatusCommitted},
	}

	totals := AssignedByTechnician(entries)

	if got := totals[7]; got != 10 {
		t.Errorf("Expected malformed entries to be skipped, got holding %v", got)
	}
	if len(totals) != 1 {
		t.Errorf("Expected totals for one technician, got %d", len(totals))
	}
}

func TestAssignedTo_NetZeroHolding(t *testing.T) {
	entries := []AttributionEntry{
		{Action: ActionAttribution, Quantity: 6, ToUserID: uintPtr(3), Status: StatusCommitted},
		{Action: ActionReprise, Quantity: 6, ToUserID: uintPtr(3), Status: StatusCommitted},
	}

	if got := AssignedTo(entries, 3); got != 0 {
		t.Errorf("Expected net holding 0, got %v", got)
	}
}

func TestQuantity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		nan   bool
	}{
		{name: "number", input: `2.5`, want: 2.5},
		{name: "integer", input: `7`, want: 7},
		{name: "numeric string", input: `"3.25"`, want: 3.25},
		{name: "garbage string", input: `"a lot"`, nan: true},
		{name: "object", input: `{"value": 2}`, nan: true},
		{name: "boolean", input: `true`, nan: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			if err := json.Unmarshal([]byte(tt.input), &q); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if tt.nan {
				if !math.IsNaN(float64(q)) {
					t.Errorf("Expected NaN for %s, got %v", tt.input, float64(q))
				}
				if q.Valid() {
					t.Errorf("Expected NaN quantity to be invalid")
				}
				return
			}
			if float64(q) != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, float64(q))
			}
		})
	}
}

func TestQuantity_MalformedEntryDoesNotFailPayload(t *testing.T) {
	payload := `[
		{"action": "ATTRIBUTION", "quantity": 5, "to_user": 7, "status": "COMMITTED"},
		{"action": "ATTRIBUTION", "quantity": "oops", "to_user": 7, "status": "COMMITTED"}
	]`

	var entries []AttributionEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	if got := AssignedTo(entries, 7); got != 5 {
		t.Errorf("Expected the malformed entry to be skipped by the fold, got %v", got)
	}
}

func TestValidQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{name: "positive", input: 1, want: true},
		{name: "fractional", input: 0.5, want: true},
		{name: "zero", input: 0, want: false},
		{name: "negative", input: -3, want: false},
		{name: "nan", input: math.NaN(), want: false},
		{name: "positive infinity", input: math.Inf(1), want: false},
		{name: "negative infinity", input: math.Inf(-1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidQuantity(tt.input); got != tt.want {
				t.Errorf("ValidQuantity(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
