package releases

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"release-notes-drafter/internal/config"
)

var (
	ErrNotFound     = errors.New("release not found")
	ErrCorruptStore = errors.New("release store is corrupt")
)

// Entry is a published release note
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Title     string    `json:"title" yaml:"title"`
	DateRange string    `json:"dateRange,omitempty" yaml:"dateRange,omitempty"`
	Repo      string    `json:"repo,omitempty" yaml:"repo,omitempty"`
	Base      string    `json:"base,omitempty" yaml:"base,omitempty"`
	Head      string    `json:"head,omitempty" yaml:"head,omitempty"`
	Changes   []string  `json:"changes" yaml:"changes"`
	Impact    []string  `json:"impact" yaml:"impact"`
	Risks     []string  `json:"risks" yaml:"risks"`
}

// Store persists published release notes
type Store interface {
	// List returns every entry, newest first
	List(ctx context.Context) ([]Entry, error)

	// Get returns the entry with the given ID or ErrNotFound
	Get(ctx context.Context, id string) (Entry, error)

	// Publish assigns an ID and creation time to entry and stores it
	Publish(ctx context.Context, entry Entry) (Entry, error)

	Close() error
}

// NewStore opens the database store when RND_STORE_URL is set and the JSON file store otherwise
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg.StoreURL != "" {
		return NewDBStore(ctx, cfg.StoreURL)
	}
	return NewFileStore(cfg.DataDir)
}

// stamp fills the server-assigned fields of a new entry
func stamp(entry Entry, now time.Time) Entry {
	entry.ID = uuid.NewString()
	entry.CreatedAt = now.UTC()
	entry.Changes = nonNil(entry.Changes)
	entry.Impact = nonNil(entry.Impact)
	entry.Risks = nonNil(entry.Risks)
	return entry
}

func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
