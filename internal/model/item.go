package model

import (
	"fmt"
	"time"
)

// Item represents a single out-of-stock report on the board.
// Items are created by the reporting frontend; this service only reads,
// resolves and deletes them.
type Item struct {
	ID         int64      `json:"id"`
	Location   string     `json:"location"`
	ItemName   string     `json:"item_name"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
}

// SortField is a column the board can be ordered by. The board always
// sorts descending.
type SortField string

const (
	SortByLocation  SortField = "location"
	SortByItemName  SortField = "item_name"
	SortByCreatedAt SortField = "created_at"
	SortByCreatedBy SortField = "created_by"
)

// DefaultSortField is used when the request carries no sort parameter.
const DefaultSortField = SortByLocation

// ParseSortField validates a user-supplied sort column. An empty string
// maps to the default; anything outside the four known columns is rejected
// so the value can be interpolated into queries safely.
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case "":
		return DefaultSortField, nil
	case SortByLocation, SortByItemName, SortByCreatedAt, SortByCreatedBy:
		return SortField(s), nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

// BoardAction is a user intent emitted by the renderer as an explicit
// (action, item id) event and applied on the following render cycle.
type BoardAction string

const (
	ActionResolve BoardAction = "resolve"
	ActionDelete  BoardAction = "delete"
)

// ParseBoardAction validates a user-supplied action name.
func ParseBoardAction(s string) (BoardAction, error) {
	switch BoardAction(s) {
	case ActionResolve, ActionDelete:
		return BoardAction(s), nil
	default:
		return "", fmt.Errorf("unknown board action %q", s)
	}
}

// PendingAction is a mutation recorded by a button click and applied at the
// start of the next render, before the board is queried again.
type PendingAction struct {
	Action BoardAction `json:"action"`
	ItemID int64       `json:"item_id"`
}
