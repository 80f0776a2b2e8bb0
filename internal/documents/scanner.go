package documents

import "github.com/rsrinivasan18/agentic-ai-platform/pkg/repository"

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.AgentID,
		&d.Name,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.ChunkCount,
		&d.StorageKey,
		&d.CreatedAt,
	)
	return d, err
}
