package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/restadmin/internal/model"
)

var (
	steve = model.Profile{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Steve"}
	alex  = model.Profile{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "Alex"}
)

type DirectorySuite struct {
	suite.Suite
	dir  *Directory
	path string
	ctx  context.Context
}

func TestDirectorySuite(t *testing.T) {
	suite.Run(t, new(DirectorySuite))
}

func (s *DirectorySuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "whitelist.json")
	s.dir = New(s.path)
	s.ctx = context.Background()
}

// User cache tests

func (s *DirectorySuite) TestProfileByID() {
	s.dir.CacheProfile(steve)

	p, err := s.dir.ProfileByID(s.ctx, steve.ID)
	s.Require().NoError(err)
	s.Equal(steve, *p)
}

func (s *DirectorySuite) TestProfileByName() {
	s.dir.CacheProfile(steve)

	p, err := s.dir.ProfileByName(s.ctx, "Steve")
	s.Require().NoError(err)
	s.Equal(steve, *p)
}

func (s *DirectorySuite) TestProfileByNameIsExact() {
	s.dir.CacheProfile(steve)

	_, err := s.dir.ProfileByName(s.ctx, "steve")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *DirectorySuite) TestProfileNotFound() {
	_, err := s.dir.ProfileByID(s.ctx, alex.ID)
	s.ErrorIs(err, model.ErrProfileNotFound)

	_, err = s.dir.ProfileByName(s.ctx, "Alex")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *DirectorySuite) TestCacheProfileRenameDropsOldName() {
	s.dir.CacheProfile(steve)
	s.dir.CacheProfile(model.Profile{ID: steve.ID, Name: "Steven"})

	_, err := s.dir.ProfileByName(s.ctx, "Steve")
	s.ErrorIs(err, model.ErrProfileNotFound)

	p, err := s.dir.ProfileByName(s.ctx, "Steven")
	s.Require().NoError(err)
	s.Equal(steve.ID, p.ID)
}

// Session tests

func (s *DirectorySuite) TestConnectedPlayersEmpty() {
	players, err := s.dir.ConnectedPlayers(s.ctx)
	s.Require().NoError(err)
	s.NotNil(players)
	s.Empty(players)
}

func (s *DirectorySuite) TestConnectAndDisconnect() {
	s.dir.Connect(steve)
	s.dir.Connect(alex)
	s.dir.Connect(steve)

	players, err := s.dir.ConnectedPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.Profile{steve, alex}, players)

	s.dir.Disconnect(steve.ID)

	players, err = s.dir.ConnectedPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.Profile{alex}, players)
}

// Whitelist tests

func (s *DirectorySuite) TestAddIsIdempotent() {
	s.Require().NoError(s.dir.AddToWhitelist(s.ctx, steve))
	s.Require().NoError(s.dir.AddToWhitelist(s.ctx, steve))

	names, err := s.dir.WhitelistedNames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Steve"}, names)
}

func (s *DirectorySuite) TestIsWhitelisted() {
	ok, err := s.dir.IsWhitelisted(s.ctx, steve)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.dir.AddToWhitelist(s.ctx, steve))

	ok, err = s.dir.IsWhitelisted(s.ctx, steve)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *DirectorySuite) TestRemove() {
	s.Require().NoError(s.dir.AddToWhitelist(s.ctx, steve))
	s.Require().NoError(s.dir.AddToWhitelist(s.ctx, alex))
	s.Require().NoError(s.dir.RemoveFromWhitelist(s.ctx, steve))

	names, err := s.dir.WhitelistedNames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Alex"}, names)
}

func (s *DirectorySuite) TestRemoveMissingIsNoop() {
	s.NoError(s.dir.RemoveFromWhitelist(s.ctx, steve))
}

// Persistence tests

func (s *DirectorySuite) TestSaveAndLoadWhitelist() {
	s.Require().NoError(s.dir.AddToWhitelist(s.ctx, steve))
	s.Require().NoError(s.dir.SaveWhitelist(s.ctx))

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.JSONEq(`[{"uuid":"11111111-1111-1111-1111-111111111111","name":"Steve"}]`, string(data))

	reloaded := New(s.path)
	s.Require().NoError(reloaded.LoadWhitelist())

	ok, err := reloaded.IsWhitelisted(s.ctx, steve)
	s.Require().NoError(err)
	s.True(ok)

	p, err := reloaded.ProfileByName(s.ctx, "Steve")
	s.Require().NoError(err)
	s.Equal(steve, *p)
}

func (s *DirectorySuite) TestLoadWhitelistMissingFile() {
	s.NoError(s.dir.LoadWhitelist())
}

func (s *DirectorySuite) TestSaveWithoutPathIsNoop() {
	d := New("")
	s.Require().NoError(d.AddToWhitelist(s.ctx, steve))
	s.NoError(d.SaveWhitelist(s.ctx))
}

func (s *DirectorySuite) TestLoadUserCache() {
	path := filepath.Join(s.T().TempDir(), "usercache.json")
	content := `[
		{"name":"Steve","uuid":"11111111-1111-1111-1111-111111111111","expiresOn":"2030-01-01 00:00:00 +0000"},
		{"name":"Broken","uuid":"not-a-uuid"}
	]`
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	s.Require().NoError(s.dir.LoadUserCache(path))

	p, err := s.dir.ProfileByID(s.ctx, steve.ID)
	s.Require().NoError(err)
	s.Equal("Steve", p.Name)

	_, err = s.dir.ProfileByName(s.ctx, "Broken")
	s.ErrorIs(err, model.ErrProfileNotFound)
}
