package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// BuildStatus represents the state of a site build.
type BuildStatus string

const (
	StatusRunning   BuildStatus = "running"
	StatusCompleted BuildStatus = "completed"
	StatusFailed    BuildStatus = "failed"
	StatusPartial   BuildStatus = "partial"
)

// Build tracks the state of one site navigation build.
type Build struct {
	mu sync.Mutex

	Status    BuildStatus
	Progress  Progress
	StartedAt time.Time
	UpdatedAt time.Time

	errors []string
}

// Progress counts pages through a build.
type Progress struct {
	TotalPages     int      `json:"total_pages"`
	PagesRendered  int      `json:"pages_rendered"`
	PagesWritten   int      `json:"pages_written"`
	PagesUnchanged int      `json:"pages_unchanged"`
	Errors         []string `json:"errors"`
}

func newBuild(total int) *Build {
	now := time.Now()
	return &Build{
		Status:    StatusRunning,
		Progress:  Progress{TotalPages: total},
		StartedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus updates build status atomically.
func (b *Build) SetStatus(status BuildStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Status = status
	b.UpdatedAt = time.Now()
}

// AddError records an error.
func (b *Build) AddError(err string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errors = append(b.errors, err)
	b.Progress.Errors = b.errors
	b.UpdatedAt = time.Now()
}

// IncrRendered counts a page whose navigation rendered, and whether its
// output file changed.
func (b *Build) IncrRendered(written bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Progress.PagesRendered++
	if written {
		b.Progress.PagesWritten++
	} else {
		b.Progress.PagesUnchanged++
	}
	b.UpdatedAt = time.Now()
}

// BuildSnapshot is a read-only, JSON-safe copy of build state.
type BuildSnapshot struct {
	Status     BuildStatus `json:"status"`
	Progress   Progress    `json:"progress"`
	DurationMs int64       `json:"duration_ms"`
}

// Snapshot returns a JSON-safe copy of the build state.
func (b *Build) Snapshot() BuildSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	errs := make([]string, len(b.errors))
	copy(errs, b.errors)
	p := b.Progress
	p.Errors = errs
	return BuildSnapshot{
		Status:     b.Status,
		Progress:   p,
		DurationMs: b.UpdatedAt.Sub(b.StartedAt).Milliseconds(),
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
