package services

import (
	"fmt"
	"strings"

	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/repository"
)

// ReferenceNotFoundError means a spoken name matched nothing in the
// caller's organization.
type ReferenceNotFoundError struct {
	Kind  string
	Query string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("no %s matching %q", e.Kind, e.Query)
}

// AmbiguousReferenceError means a spoken name matched several records
// equally well. Ambiguity propagates as an error; the first row is never
// silently picked.
type AmbiguousReferenceError struct {
	Kind       string
	Query      string
	Candidates []string
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("%s %q is ambiguous: could be %s",
		e.Kind, e.Query, strings.Join(e.Candidates, ", "))
}

// NoAssignmentError reports a worker with no assignment on a date. The
// message names both so it can be read back to the caller verbatim.
type NoAssignmentError struct {
	WorkerName string
	Date       string
}

func (e *NoAssignmentError) Error() string {
	return fmt.Sprintf("%s has no assignment on %s", e.WorkerName, e.Date)
}

// pickByName narrows candidates from a substring search: one match wins,
// a single case-insensitive exact match beats several partials, anything
// else is ambiguous.
func pickByName(kind, query string, names []string) (int, error) {
	switch len(names) {
	case 0:
		return 0, &ReferenceNotFoundError{Kind: kind, Query: query}
	case 1:
		return 0, nil
	}

	exact := -1
	for i, name := range names {
		if strings.EqualFold(name, strings.TrimSpace(query)) {
			if exact >= 0 {
				return 0, &AmbiguousReferenceError{Kind: kind, Query: query, Candidates: names}
			}
			exact = i
		}
	}
	if exact >= 0 {
		return exact, nil
	}

	return 0, &AmbiguousReferenceError{Kind: kind, Query: query, Candidates: names}
}

func resolveWorker(repo repository.WorkerRepository, organizationID uint64, query string) (*models.Worker, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ReferenceNotFoundError{Kind: "worker", Query: query}
	}

	matches, err := repo.SearchByName(organizationID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search workers: %w", err)
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}

	idx, err := pickByName("worker", query, names)
	if err != nil {
		return nil, err
	}
	return &matches[idx], nil
}

func resolveTask(repo repository.TaskRepository, organizationID uint64, query string) (*models.Task, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ReferenceNotFoundError{Kind: "task", Query: query}
	}

	matches, err := repo.SearchByName(organizationID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}

	idx, err := pickByName("task", query, names)
	if err != nil {
		return nil, err
	}
	return &matches[idx], nil
}

func resolveJobSite(repo repository.JobSiteRepository, organizationID uint64, query string) (*models.JobSite, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ReferenceNotFoundError{Kind: "job site", Query: query}
	}

	matches, err := repo.SearchByName(organizationID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search job sites: %w", err)
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}

	idx, err := pickByName("job site", query, names)
	if err != nil {
		return nil, err
	}
	return &matches[idx], nil
}
