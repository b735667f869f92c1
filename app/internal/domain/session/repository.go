package session

import "context"

type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}

type Gateway interface {
	Login(ctx context.Context, username, password string) (*Session, error)
}
