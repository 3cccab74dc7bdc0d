package presenters

import (
	"time"

	"github.com/google/uuid"
)

// ActionResult acknowledges a stub action. Persisted is always false: the
// store is read-only and nothing an action does survives a reload.
type ActionResult struct {
	Action    string    `json:"action"`
	ID        string    `json:"id,omitempty"`
	Success   bool      `json:"success"`
	Persisted bool      `json:"persisted"`
	At        time.Time `json:"at"`
}

// stub logs the action and reports success. Pass newID to hand out a fresh
// id for records the action would have created.
func (b base) stub(action string, newID bool, keysAndValues ...interface{}) ActionResult {
	res := ActionResult{
		Action:  action,
		Success: true,
		At:      time.Now().UTC(),
	}
	if newID {
		res.ID = uuid.NewString()
	}
	kv := append([]interface{}{"action", action, "id", res.ID}, keysAndValues...)
	b.log.Info("stub action, not persisted", kv...)
	return res
}
