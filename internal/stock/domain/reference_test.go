package domain

import (
	"encoding/json"
	"testing"
)

func TestRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   uint
		wantName string
		resolved bool
	}{
		{name: "numeric id", input: `42`, wantID: 42},
		{name: "string id", input: `"42"`, wantID: 42},
		{name: "populated object", input: `{"_id": "42", "name": "Crane Alpha"}`, wantID: 42, wantName: "Crane Alpha", resolved: true},
		{name: "null", input: `null`},
		{name: "unparseable string", input: `"forty-two"`},
		{name: "object with bad id", input: `{"_id": "abc", "name": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref Ref
			if err := json.Unmarshal([]byte(tt.input), &ref); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if ref.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", ref.ID, tt.wantID)
			}
			if ref.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", ref.Name, tt.wantName)
			}
			if ref.Resolved != tt.resolved {
				t.Errorf("Resolved = %v, want %v", ref.Resolved, tt.resolved)
			}
		})
	}
}

func TestRef_ZeroAndPtr(t *testing.T) {
	var absent Ref
	if !absent.Zero() {
		t.Errorf("Expected empty ref to be zero")
	}
	if absent.Ptr() != nil {
		t.Errorf("Expected nil pointer for absent ref")
	}

	present := Ref{ID: 5}
	if present.Zero() {
		t.Errorf("Expected ref with id to be non-zero")
	}
	if ptr := present.Ptr(); ptr == nil || *ptr != 5 {
		t.Errorf("Expected pointer to 5, got %v", ptr)
	}
}

func TestRef_MarshalJSON(t *testing.T) {
	bare, err := json.Marshal(Ref{ID: 7})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(bare) != `"7"` {
		t.Errorf("Expected bare id, got %s", bare)
	}

	populated, err := json.Marshal(Ref{ID: 7, Name: "Depot Nord", Resolved: true})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(populated) != `{"_id":"7","name":"Depot Nord"}` {
		t.Errorf("Unexpected populated encoding: %s", populated)
	}

	absent, err := json.Marshal(Ref{})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(absent) != "null" {
		t.Errorf("Expected null for absent ref, got %s", absent)
	}
}
