package connections

import "context"

// Gate answers whether two users may exchange direct messages. Every code
// path that persists or relays a direct message consults it before touching
// storage.
type Gate struct {
	repo Repository
}

func NewGate(repo Repository) *Gate {
	return &Gate{repo: repo}
}

func (g *Gate) CanMessage(ctx context.Context, a, b string) (bool, error) {
	return g.repo.AcceptedExists(ctx, a, b)
}
