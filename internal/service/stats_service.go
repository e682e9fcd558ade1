package service

import (
	"context"
	"fmt"

	"github.com/local-avatar-api/internal/repository"
)

// statsService is the concrete implementation of StatsService
type statsService struct {
	counters map[string]func(context.Context) (int, error)
}

func newStatsService(repos *repository.Repositories) *statsService {
	return &statsService{
		counters: map[string]func(context.Context) (int, error){
			"users":       repos.User.Count,
			"articles":    repos.Article.Count,
			"comments":    repos.Comment.Count,
			"attachments": repos.Attachment.Count,
		},
	}
}

// Counts returns the number of records per table
func (s *statsService) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(s.counters))
	for name, count := range s.counters {
		n, err := count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}
		counts[name] = n
	}
	return counts, nil
}
