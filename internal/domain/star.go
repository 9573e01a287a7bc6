// Package domain contains entity without logic, just meta-data
package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

const (
	MaxDisplayNameLen = 64
	DefaultName       = "unnamed star"
)

type (
	StarID  string
	OwnerID string
)

// StarRecord is one shared unit of history: a voice clip plus the
// display and placement metadata the clients render it with.
// Shape and Placement are opaque to the server and pass through unmodified.
type StarRecord struct {
	ID          StarID          `json:"id"`
	Owner       OwnerID         `json:"owner"`
	DisplayName string          `json:"display_name"`
	Shape       json.RawMessage `json:"shape,omitempty"`
	Placement   json.RawMessage `json:"placement,omitempty"`
	Audio       []byte          `json:"audio,omitempty"`
}

// DraftStar is the client-submitted form of a record. Any id or owner a
// client sends is discarded before commit.
type DraftStar struct {
	DisplayName string          `json:"display_name" validate:"max=64"`
	Shape       json.RawMessage `json:"shape"`
	Placement   json.RawMessage `json:"placement"`
	Audio       []byte          `json:"audio"`
}

// NewStar mints a committed record from a draft. It avoids ad-hoc struct
// literals in adapters and is the single place ids are assigned.
func NewStar(draft DraftStar, owner OwnerID) StarRecord {
	name := draft.DisplayName
	if name == "" {
		name = DefaultName
	}
	return StarRecord{
		ID:          StarID(uuid.NewString()),
		Owner:       owner,
		DisplayName: name,
		Shape:       draft.Shape,
		Placement:   draft.Placement,
		Audio:       draft.Audio,
	}
}
