package agents

import "github.com/rsrinivasan18/agentic-ai-platform/pkg/repository"

func scanAgent(s repository.Scanner) (Agent, error) {
	var a Agent
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&a.Type,
		&a.Config,
		&a.OwnerID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
