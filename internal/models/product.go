package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// ProductID is the opaque identifier assigned by the remote store.
type ProductID string

// UnmarshalJSON accepts both string and numeric ids. null decodes as empty.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*id = ""
		return nil
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	if n, ok := raw.(json.Number); ok {
		raw = n.String()
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}
	*id = ProductID(s)
	return nil
}

// Valid reports whether the id is set.
func (id ProductID) Valid() bool {
	return id != ""
}

// Truthy reports whether a raw JSON id counts as assigned. null, false, the
// empty string and any number equal to zero do not.
func Truthy(raw json.RawMessage) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return false
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return false
	}

	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			// out of float range, so not zero
			return true
		}
		return f != 0
	}
	return true
}

func (id ProductID) String() string {
	return string(id)
}

// Fields holds the editable attributes of a product.
type Fields struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Product represents a product entity in the inventory system.
type Product struct {
	ID ProductID `json:"id"`
	Fields
}

// Editable returns the attributes an operator can change.
func (p Product) Editable() Fields {
	return p.Fields
}

// Merge overlays every editable field on p. The id is never touched.
func (p Product) Merge(f Fields) Product {
	p.Fields = f
	return p
}

// EditMode tells whether the form targets a new record or an existing one.
type EditMode struct {
	Active   bool      `json:"active"`
	TargetID ProductID `json:"target_id,omitempty"`
}
