// Package deps reports the availability of the external binaries ritualpair
// shells out to. Missing optional tools degrade features (timestamps fall
// back to filesystem time, names fall back to sequence numbers) rather than
// blocking a run.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"ritualpair/internal/config"
)

// Requirement defines an external dependency ritualpair relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the dependency list for the configured tool binaries.
func Requirements(cfg *config.Config) []Requirement {
	tools := config.Default().Tools
	if cfg != nil {
		tools = cfg.Tools
	}
	return []Requirement{
		{
			Name:        "ffprobe",
			Command:     tools.FFprobe,
			Description: "video container metadata and duration",
			Optional:    true,
		},
		{
			Name:        "ffmpeg",
			Command:     tools.FFmpeg,
			Description: "frame sampling, compression, splitting",
			Optional:    true,
		},
		{
			Name:        "tesseract",
			Command:     tools.Tesseract,
			Description: "name extraction from request photos",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
