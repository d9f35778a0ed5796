package models

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference field the backend sends either as a bare id or as a
// populated document ({"_id": ..., "name"/"title": ...}).
type Ref struct {
	ID    string
	Label string
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}

	var doc struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	r.ID = doc.MongoID
	if r.ID == "" {
		r.ID = doc.ID
	}
	r.Label = doc.Name
	if r.Label == "" {
		r.Label = doc.Title
	}
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}
