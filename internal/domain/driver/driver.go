// Package driver holds the driver roster and the duty-day analysis shared
// with the board's alerting.
package driver

import (
	"context"
	"errors"
	"sort"
	"strings"
)

var ErrDriverNotFound = errors.New("driver: not found")

// Record is one roster entry. Drivers are soft-deleted: IsActive false keeps
// the record for history but hides it from the default listing.
type Record struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Memo     string `json:"memo"`
	IsActive bool   `json:"isActive"`
}

// Repository is the roster's document-store collaborator.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Record, error)
	ByName(ctx context.Context, name string) (*Record, error)
	Insert(ctx context.Context, rec *Record) (string, error)
	Update(ctx context.Context, id string, rec *Record) error
	Deactivate(ctx context.Context, id string) error
}

// SortByName orders roster records by name for display.
func SortByName(recs []Record) {
	sort.Slice(recs, func(i, j int) bool {
		return strings.Compare(recs[i].Name, recs[j].Name) < 0
	})
}
