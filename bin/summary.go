package bin

import "github.com/zmap/zsshconf"

// Summary holds the results of a run of a zsshconf binary.
type Summary struct {
	StatusesPerModule map[string]*zsshconf.State `json:"statuses"`
	Jobs              int                        `json:"jobs"`
	StartTime         string                     `json:"start"`
	EndTime           string                     `json:"end"`
	Duration          string                     `json:"duration"`
	Error             string                     `json:"error,omitempty"`
}
