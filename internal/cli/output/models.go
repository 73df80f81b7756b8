package output

import "time"

// PaneSummary is one saved pane as printed by panes list.
type PaneSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	State      string    `json:"state"`
	Selected   bool      `json:"selected,omitempty"`
	TaskID     string    `json:"task_id,omitempty"`
	Provider   string    `json:"provider,omitempty"`
	WorkingDir string    `json:"working_dir,omitempty"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// PaneList is the panes list payload.
type PaneList struct {
	Path    string        `json:"path"`
	SavedAt time.Time     `json:"saved_at,omitempty"`
	Panes   []PaneSummary `json:"panes"`
}
