package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcoot/restadmin/internal/model"
)

// Directory is the game server's view of players and its whitelist.
// Implementations serialize their own mutations.
type Directory interface {
	// Session operations
	ConnectedPlayers(ctx context.Context) ([]model.Profile, error)

	// User cache operations
	ProfileByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	ProfileByName(ctx context.Context, name string) (*model.Profile, error)

	// Whitelist operations
	WhitelistedNames(ctx context.Context) ([]string, error)
	IsWhitelisted(ctx context.Context, profile model.Profile) (bool, error)
	AddToWhitelist(ctx context.Context, profile model.Profile) error
	RemoveFromWhitelist(ctx context.Context, profile model.Profile) error
	SaveWhitelist(ctx context.Context) error
}
