package domain

import (
	"errors"
	"testing"
)

func TestResource_Available(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		assigned float64
		want     float64
	}{
		{name: "nothing assigned", quantity: 10, assigned: 0, want: 10},
		{name: "partially assigned", quantity: 10, assigned: 4, want: 6},
		{name: "fully assigned", quantity: 10, assigned: 10, want: 0},
		{name: "inconsistent data clamps to zero", quantity: 10, assigned: 12, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resource{Quantity: tt.quantity, AssignedQuantity: tt.assigned}
			if got := r.Available(); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResource_Inconsistent(t *testing.T) {
	consistent := Resource{Quantity: 10, AssignedQuantity: 10}
	if consistent.Inconsistent() {
		t.Errorf("Expected assigned == quantity to be consistent")
	}

	over := Resource{Quantity: 10, AssignedQuantity: 11}
	if !over.Inconsistent() {
		t.Errorf("Expected assigned > quantity to be flagged")
	}

	negative := Resource{Quantity: 10, AssignedQuantity: -1}
	if !negative.Inconsistent() {
		t.Errorf("Expected negative assigned to be flagged")
	}
}

func TestResource_ApplyAssign(t *testing.T) {
	tests := []struct {
		name         string
		resource     Resource
		qty          float64
		wantErr      error
		wantAssigned float64
	}{
		{
			name:         "assign within available",
			resource:     Resource{Quantity: 10, AssignedQuantity: 2},
			qty:          3,
			wantAssigned: 5,
		},
		{
			name:         "assign exactly available",
			resource:     Resource{Quantity: 10, AssignedQuantity: 2},
			qty:          8,
			wantAssigned: 10,
		},
		{
			name:     "assign more than available",
			resource: Resource{Quantity: 10, AssignedQuantity: 2},
			qty:      9,
			wantErr:  ErrInsufficientStock,
		},
		{
			name:     "zero quantity",
			resource: Resource{Quantity: 10},
			qty:      0,
			wantErr:  ErrInvalidQuantity,
		},
		{
			name:     "negative quantity",
			resource: Resource{Quantity: 10},
			qty:      -1,
			wantErr:  ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.resource
			err := tt.resource.ApplyAssign(tt.qty)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				if tt.resource != before {
					t.Errorf("Expected resource untouched after rejection")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyAssign returned error: %v", err)
			}
			if tt.resource.AssignedQuantity != tt.wantAssigned {
				t.Errorf("AssignedQuantity = %v, want %v", tt.resource.AssignedQuantity, tt.wantAssigned)
			}
		})
	}
}

func TestResource_ApplyRelease(t *testing.T) {
	tests := []struct {
		name         string
		resource     Resource
		qty          float64
		held         float64
		wantErr      error
		wantAssigned float64
	}{
		{
			name:         "release part of holding",
			resource:     Resource{Quantity: 10, AssignedQuantity: 6},
			qty:          2,
			held:         4,
			wantAssigned: 4,
		},
		{
			name:         "release entire holding",
			resource:     Resource{Quantity: 10, AssignedQuantity: 6},
			qty:          4,
			held:         4,
			wantAssigned: 2,
		},
		{
			name:     "release more than held",
			resource: Resource{Quantity: 10, AssignedQuantity: 6},
			qty:      5,
			held:     4,
			wantErr:  ErrExceedsAssigned,
		},
		{
			name:     "release with nothing held",
			resource: Resource{Quantity: 10, AssignedQuantity: 6},
			qty:      1,
			held:     0,
			wantErr:  ErrExceedsAssigned,
		},
		{
			name:     "invalid quantity",
			resource: Resource{Quantity: 10, AssignedQuantity: 6},
			qty:      0,
			held:     4,
			wantErr:  ErrInvalidQuantity,
		},
		{
			// Ledger says the technician holds more than the resource-wide
			// assigned counter; the release must not drive it negative.
			name:         "assigned counter clamps at zero",
			resource:     Resource{Quantity: 10, AssignedQuantity: 1},
			qty:          3,
			held:         3,
			wantAssigned: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.resource
			err := tt.resource.ApplyRelease(tt.qty, tt.held)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				if tt.resource != before {
					t.Errorf("Expected resource untouched after rejection")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyRelease returned error: %v", err)
			}
			if tt.resource.AssignedQuantity != tt.wantAssigned {
				t.Errorf("AssignedQuantity = %v, want %v", tt.resource.AssignedQuantity, tt.wantAssigned)
			}
		})
	}
}

func TestParseResourceType(t *testing.T) {
	tests := []struct {
		input   string
		want    ResourceType
		wantErr bool
	}{
		{input: "materials", want: ResourceMaterial},
		{input: "material", want: ResourceMaterial},
		{input: "consumables", want: ResourceConsumable},
		{input: "consumable", want: ResourceConsumable},
		{input: "vehicles", want: ResourceVehicle},
		{input: "vehicle", want: ResourceVehicle},
		{input: "products", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseResourceType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResourceType(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseResourceType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
