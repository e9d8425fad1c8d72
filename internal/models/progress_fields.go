package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AssigneeSets maps a sub-task name to the set of user ids assigned to it.
// Early records stored a single assignee id per sub-task instead of a list;
// UnmarshalJSON normalizes those legacy scalars into one-element sets so
// callers only ever see sets.
type AssigneeSets map[string][]string

func (a *AssigneeSets) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*a = nil
		return nil
	}

	out := make(AssigneeSets, len(raw))
	for subTask, value := range raw {
		var ids []string
		if err := json.Unmarshal(value, &ids); err != nil {
			// Legacy shape: a single assignee id stored as a string.
			var single string
			if err := json.Unmarshal(value, &single); err != nil {
				return fmt.Errorf("assignees for %q are neither list nor id: %w", subTask, err)
			}
			if single != "" {
				ids = []string{single}
			}
		}
		out[subTask] = dedupe(ids)
	}
	*a = out
	return nil
}

// Add appends a user id to a sub-task's set; adding an id already present is
// a no-op.
func (a AssigneeSets) Add(subTask, userID string) {
	for _, id := range a[subTask] {
		if id == userID {
			return
		}
	}
	a[subTask] = append(a[subTask], userID)
}

// Remove deletes a user id from a sub-task's set.
func (a AssigneeSets) Remove(subTask, userID string) {
	ids := a[subTask]
	for i, id := range ids {
		if id == userID {
			a[subTask] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

// Normalized returns a copy with duplicate ids removed per sub-task.
func (a AssigneeSets) Normalized() AssigneeSets {
	if a == nil {
		return nil
	}
	out := make(AssigneeSets, len(a))
	for subTask, ids := range a {
		out[subTask] = dedupe(ids)
	}
	return out
}

func (a AssigneeSets) Value() (driver.Value, error) { return jsonValue(a) }

func (a *AssigneeSets) Scan(value interface{}) error { return jsonScan(value, a) }

// CompletionFlags maps a sub-task name to its completion flag. Absent
// sub-tasks are not complete.
type CompletionFlags map[string]bool

func (c CompletionFlags) Value() (driver.Value, error) { return jsonValue(c) }

func (c *CompletionFlags) Scan(value interface{}) error { return jsonScan(value, c) }

// RoleAssignments maps a named role key (leadBuilder, supportCutter, ...) to
// a single user id. Only checkpoints with HasRoles carry these.
type RoleAssignments map[string]string

func (r RoleAssignments) Value() (driver.Value, error) { return jsonValue(r) }

func (r *RoleAssignments) Scan(value interface{}) error { return jsonScan(value, r) }

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
