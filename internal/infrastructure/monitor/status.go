package monitor

import "time"

// CheckStatus is the last result of one named check.
type CheckStatus struct {
	OK        bool          `json:"ok"`
	Error     string        `json:"error,omitempty"`
	Latency   time.Duration `json:"latency"`
	CheckedAt time.Time     `json:"checked_at"`
	// Critical checks decide whether the service reports itself healthy.
	Critical bool `json:"critical"`
}

// Status is a snapshot of every registered check.
type Status struct {
	Healthy   bool                   `json:"healthy"`
	Checks    map[string]CheckStatus `json:"checks"`
	LastCheck time.Time              `json:"last_check"`
}
