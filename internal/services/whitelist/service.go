package whitelist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/restadmin/internal/directory"
	"github.com/mcoot/restadmin/internal/metrics"
	"github.com/mcoot/restadmin/internal/model"
)

// canonicalUUIDLen is the length of the 8-4-4-4-12 textual form
const canonicalUUIDLen = 36

// Service exposes player and whitelist administration over a host directory
type Service struct {
	directory directory.Directory
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New creates a new whitelist service. m may be nil.
func New(dir directory.Directory, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		directory: dir,
		logger:    logger,
		metrics:   m,
	}
}

// ConnectedPlayers returns the canonical profiles of all connected players
func (s *Service) ConnectedPlayers(ctx context.Context) ([]model.Profile, error) {
	return s.directory.ConnectedPlayers(ctx)
}

// Names returns the names currently on the whitelist
func (s *Service) Names(ctx context.Context) ([]string, error) {
	return s.directory.WhitelistedNames(ctx)
}

// Resolve maps a UUID or a player name to a canonical profile. Anything that
// parses as a canonical UUID is looked up by id only, even if a player has
// a UUID-shaped name. A directory that cannot answer is treated as having
// no such profile; the cause stays wrapped in the returned error.
func (s *Service) Resolve(ctx context.Context, idOrName string) (*model.Profile, error) {
	var profile *model.Profile
	var err error
	if id, ok := parseCanonicalUUID(idOrName); ok {
		profile, err = s.directory.ProfileByID(ctx, id)
	} else {
		profile, err = s.directory.ProfileByName(ctx, idOrName)
	}

	if err != nil && !errors.Is(err, model.ErrProfileNotFound) {
		s.logger.Warn("profile lookup failed",
			slog.String("id_or_name", idOrName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", model.ErrProfileNotFound, err)
	}
	return profile, err
}

// IsWhitelisted resolves idOrName and reports whether it is whitelisted
func (s *Service) IsWhitelisted(ctx context.Context, idOrName string) (*model.Profile, bool, error) {
	profile, err := s.Resolve(ctx, idOrName)
	if err != nil {
		return nil, false, err
	}

	ok, err := s.directory.IsWhitelisted(ctx, *profile)
	if err != nil {
		return nil, false, err
	}
	return profile, ok, nil
}

// Add whitelists the resolved profile. Adding a profile that is already
// whitelisted changes nothing and is not an error.
func (s *Service) Add(ctx context.Context, idOrName string) (*model.Profile, error) {
	profile, ok, err := s.IsWhitelisted(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	if ok {
		s.metrics.WhitelistChanged(metrics.WhitelistUnchanged)
		return profile, nil
	}

	if err := s.directory.AddToWhitelist(ctx, *profile); err != nil {
		return nil, err
	}
	s.logger.Info("added profile to whitelist",
		slog.String("name", profile.Name),
		slog.String("id", profile.ID.String()),
	)
	s.metrics.WhitelistChanged(metrics.WhitelistAdded)

	if err := s.directory.SaveWhitelist(ctx); err != nil {
		return nil, err
	}
	return profile, nil
}

// Remove removes the resolved profile from the whitelist
func (s *Service) Remove(ctx context.Context, idOrName string) (*model.Profile, error) {
	profile, err := s.Resolve(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	if err := s.directory.RemoveFromWhitelist(ctx, *profile); err != nil {
		return nil, err
	}
	s.logger.Info("removed profile from whitelist",
		slog.String("name", profile.Name),
		slog.String("id", profile.ID.String()),
	)
	s.metrics.WhitelistChanged(metrics.WhitelistRemoved)

	if err := s.directory.SaveWhitelist(ctx); err != nil {
		return nil, err
	}
	return profile, nil
}

// parseCanonicalUUID accepts only the hyphenated 36 character form;
// uuid.Parse alone also accepts braces, urn: prefixes and bare hex.
func parseCanonicalUUID(s string) (uuid.UUID, bool) {
	if len(s) != canonicalUUIDLen {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
