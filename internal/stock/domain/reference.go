package domain

import (
	"encoding/json"
	"strconv"
)

// Ref is a reference to a related record that upstream payloads render
// either as a bare id ("42") or as a populated object
// ({"_id": "42", "name": "..."}). It is normalized once at decode time so
// call sites never branch on the two shapes.
type Ref struct {
	ID       uint
	Name     string
	Resolved bool
}

// Zero reports whether the reference is absent
func (r Ref) Zero() bool {
	return r.ID == 0
}

// Ptr returns the id as a nullable foreign key
func (r Ref) Ptr() *uint {
	if r.Zero() {
		return nil
	}
	id := r.ID
	return &id
}

// UnmarshalJSON accepts null, a numeric id, a string id or a populated
// {_id, name} object
func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}

	if string(data) == "null" {
		return nil
	}

	var n uint
	if err := json.Unmarshal(data, &n); err == nil {
		r.ID = n
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil // unparseable id treated as absent
		}
		r.ID = uint(id)
		return nil
	}

	var populated struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &populated); err != nil {
		return err
	}
	id, err := strconv.ParseUint(populated.ID, 10, 32)
	if err != nil {
		return nil
	}
	r.ID = uint(id)
	r.Name = populated.Name
	r.Resolved = true
	return nil
}

// MarshalJSON emits the bare id, or the populated object when resolved
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Zero() {
		return []byte("null"), nil
	}
	if !r.Resolved {
		return json.Marshal(strconv.FormatUint(uint64(r.ID), 10))
	}
	return json.Marshal(struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}{ID: strconv.FormatUint(uint64(r.ID), 10), Name: r.Name})
}
