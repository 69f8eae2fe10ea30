package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/restadmin/internal/directory"
	"github.com/mcoot/restadmin/internal/model"
)

// Directory is an in-process host directory. The whitelist is optionally
// persisted to a JSON file in the game server's whitelist format.
type Directory struct {
	mu sync.RWMutex

	profiles  map[uuid.UUID]model.Profile
	nameIndex map[string]uuid.UUID
	sessions  []uuid.UUID
	whitelist []model.Profile

	whitelistPath string
}

// fileEntry is one record of whitelist.json and usercache.json
type fileEntry struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// New creates an empty directory. An empty whitelistPath disables persistence.
func New(whitelistPath string) *Directory {
	return &Directory{
		profiles:      make(map[uuid.UUID]model.Profile),
		nameIndex:     make(map[string]uuid.UUID),
		whitelistPath: whitelistPath,
	}
}

// Ensure Directory implements the interface
var _ directory.Directory = (*Directory)(nil)

// Host-side operations

// CacheProfile records a profile in the user cache, replacing any previous
// name for the same id
func (d *Directory) CacheProfile(profile model.Profile) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cacheLocked(profile)
}

func (d *Directory) cacheLocked(profile model.Profile) {
	if old, ok := d.profiles[profile.ID]; ok && old.Name != profile.Name {
		delete(d.nameIndex, old.Name)
	}
	d.profiles[profile.ID] = profile
	d.nameIndex[profile.Name] = profile.ID
}

// Connect marks a player as connected, caching its profile
func (d *Directory) Connect(profile model.Profile) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cacheLocked(profile)
	if !slices.Contains(d.sessions, profile.ID) {
		d.sessions = append(d.sessions, profile.ID)
	}
}

// Disconnect ends a player's session
func (d *Directory) Disconnect(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions = slices.DeleteFunc(d.sessions, func(s uuid.UUID) bool { return s == id })
}

// LoadUserCache seeds the user cache from a usercache.json file
func (d *Directory) LoadUserCache(path string) error {
	entries, err := readEntries(path)
	if err != nil {
		return fmt.Errorf("load user cache: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range entries {
		d.cacheLocked(e)
	}
	return nil
}

// LoadWhitelist reads the whitelist file, if one is configured and exists.
// Whitelisted profiles are also added to the user cache.
func (d *Directory) LoadWhitelist() error {
	if d.whitelistPath == "" {
		return nil
	}

	entries, err := readEntries(d.whitelistPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load whitelist: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.whitelist = d.whitelist[:0]
	for _, e := range entries {
		d.cacheLocked(e)
		d.whitelist = append(d.whitelist, e)
	}
	return nil
}

// Session operations

func (d *Directory) ConnectedPlayers(ctx context.Context) ([]model.Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	players := make([]model.Profile, 0, len(d.sessions))
	for _, id := range d.sessions {
		if p, ok := d.profiles[id]; ok {
			players = append(players, p)
		}
	}
	return players, nil
}

// User cache operations

func (d *Directory) ProfileByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return &p, nil
}

func (d *Directory) ProfileByName(ctx context.Context, name string) (*model.Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.nameIndex[name]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	p := d.profiles[id]
	return &p, nil
}

// Whitelist operations

func (d *Directory) WhitelistedNames(ctx context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, len(d.whitelist))
	for i, p := range d.whitelist {
		names[i] = p.Name
	}
	return names, nil
}

func (d *Directory) IsWhitelisted(ctx context.Context, profile model.Profile) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.indexLocked(profile.ID) >= 0, nil
}

func (d *Directory) AddToWhitelist(ctx context.Context, profile model.Profile) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i := d.indexLocked(profile.ID); i >= 0 {
		d.whitelist[i] = profile
		return nil
	}
	d.whitelist = append(d.whitelist, profile)
	return nil
}

func (d *Directory) RemoveFromWhitelist(ctx context.Context, profile model.Profile) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i := d.indexLocked(profile.ID); i >= 0 {
		d.whitelist = slices.Delete(d.whitelist, i, i+1)
	}
	return nil
}

// SaveWhitelist writes the whitelist file atomically
func (d *Directory) SaveWhitelist(ctx context.Context) error {
	if d.whitelistPath == "" {
		return nil
	}

	d.mu.RLock()
	entries := make([]fileEntry, len(d.whitelist))
	for i, p := range d.whitelist {
		entries[i] = fileEntry{UUID: p.ID.String(), Name: p.Name}
	}
	d.mu.RUnlock()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.whitelistPath), ".whitelist-*.json")
	if err != nil {
		return fmt.Errorf("save whitelist: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save whitelist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save whitelist: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.whitelistPath); err != nil {
		return fmt.Errorf("save whitelist: %w", err)
	}
	return nil
}

func (d *Directory) indexLocked(id uuid.UUID) int {
	return slices.IndexFunc(d.whitelist, func(p model.Profile) bool { return p.ID == id })
}

// readEntries parses a JSON array of {uuid, name} records, skipping records
// whose uuid does not parse
func readEntries(path string) ([]model.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []fileEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	profiles := make([]model.Profile, 0, len(raw))
	for _, e := range raw {
		id, err := uuid.Parse(e.UUID)
		if err != nil || e.Name == "" {
			continue
		}
		profiles = append(profiles, model.Profile{ID: id, Name: e.Name})
	}
	return profiles, nil
}
