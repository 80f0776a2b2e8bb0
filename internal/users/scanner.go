package users

import "github.com/rsrinivasan18/agentic-ai-platform/pkg/repository"

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FullName,
		&u.Disabled,
		&u.HashedPassword,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
