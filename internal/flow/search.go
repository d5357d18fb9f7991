package flow

import (
	"context"
	"strings"

	"github.com/natindo/FamilyFlow/internal/models"
)

// LocationSearcher finds candidate places for free-text location entry.
type LocationSearcher interface {
	Search(ctx context.Context, query string) ([]models.Place, error)
}

// DirectorySearcher searches the static location directory. It stands in
// for a geocoding service.
type DirectorySearcher struct {
	Directory []models.Option
}

func NewDirectorySearcher(directory []models.Option) *DirectorySearcher {
	return &DirectorySearcher{Directory: directory}
}

func (s *DirectorySearcher) Search(ctx context.Context, query string) ([]models.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	var out []models.Place
	for _, o := range s.Directory {
		if strings.Contains(strings.ToLower(o.Label), q) || strings.Contains(strings.ToLower(o.Description), q) {
			out = append(out, models.Place{Name: o.Label, Address: o.Description})
		}
	}
	return out, nil
}
