package models

import (
	"encoding/json"
	"testing"
)

func TestProductID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ProductID
		valid bool
	}{
		{name: "number", input: `{"id": 2}`, want: "2", valid: true},
		{name: "string", input: `{"id": "a1b2"}`, want: "a1b2", valid: true},
		{name: "large number", input: `{"id": 9007199254740993}`, want: "9007199254740993", valid: true},
		{name: "zero", input: `{"id": 0}`, want: "0", valid: true},
		{name: "empty string", input: `{"id": ""}`, want: "", valid: false},
		{name: "null", input: `{"id": null}`, want: "", valid: false},
		{name: "missing", input: `{}`, want: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			if err := json.Unmarshal([]byte(tt.input), &p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ID != tt.want {
				t.Errorf("expected id %q, got %q", tt.want, p.ID)
			}
			if p.ID.Valid() != tt.valid {
				t.Errorf("expected Valid() %v, got %v", tt.valid, p.ID.Valid())
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: `2`, want: true},
		{raw: `"a1b2"`, want: true},
		{raw: `"0"`, want: true},
		{raw: `"false"`, want: true},
		{raw: `true`, want: true},
		{raw: `1e999`, want: true},
		{raw: `{"v": 1}`, want: true},
		{raw: `0`, want: false},
		{raw: `0.0`, want: false},
		{raw: `-0`, want: false},
		{raw: `0e10`, want: false},
		{raw: `""`, want: false},
		{raw: `false`, want: false},
		{raw: `null`, want: false},
		{raw: ``, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Truthy(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("Truthy(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestProductID_UnmarshalJSON_Object(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id": {"nested": 1}}`), &p); err == nil {
		t.Fatal("expected error for object id")
	}
}

func TestProduct_MergeKeepsID(t *testing.T) {
	p := Product{ID: "1", Fields: Fields{Name: "A", Description: "d", Category: "c", Price: 10, Quantity: 5}}

	merged := p.Merge(Fields{Name: "B", Description: "e", Category: "f", Price: 12, Quantity: 1})

	if merged.ID != "1" {
		t.Errorf("expected id 1, got %q", merged.ID)
	}
	if merged.Name != "B" || merged.Price != 12 || merged.Quantity != 1 {
		t.Errorf("expected all fields overlaid, got %+v", merged)
	}
	if p.Name != "A" {
		t.Errorf("expected original product unchanged, got %+v", p)
	}
}

func TestProduct_MarshalJSON(t *testing.T) {
	p := Product{ID: "7", Fields: Fields{Name: "Pen", Description: "blue", Category: "office", Price: 1.5, Quantity: 3}}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"id":"7","name":"Pen","description":"blue","category":"office","price":1.5,"quantity":3}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}
