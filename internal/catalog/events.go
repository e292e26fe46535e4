package catalog

import "time"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent is the envelope published to the catalog events topic
// after every successful mutation.
type ChangeEvent struct {
	Entity string    `json:"entity"` // "product" or "variant"
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}
