package redis

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/restadmin/internal/directory"
	"github.com/mcoot/restadmin/internal/model"
)

// Directory is a host directory whose state is shared with the game server
// through Redis. The game server owns the keys; this side reads them and
// mutates only the whitelist.
type Directory struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis directory and verifies the connection. Hooks are
// installed before the first command.
func New(cfg Config, hooks ...redis.Hook) (*Directory, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	// a host that cannot answer is reported on the first failure
	opts.MaxRetries = -1
	opts.DialerRetries = 1

	client := redis.NewClient(opts)
	for _, h := range hooks {
		client.AddHook(h)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis directory with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Directory {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Directory{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (d *Directory) Close() error {
	return d.client.Close()
}

// Ensure Directory implements the interface
var _ directory.Directory = (*Directory)(nil)

// Host-side operations

// CacheProfile records a profile in the user cache
func (d *Directory) CacheProfile(ctx context.Context, profile model.Profile) error {
	id := profile.ID.String()

	old, err := d.client.HGet(ctx, profilesKey(d.cfg.KeyPrefix), id).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := d.client.TxPipeline()
	if old != "" && old != profile.Name {
		pipe.HDel(ctx, nameIndexKey(d.cfg.KeyPrefix), old)
	}
	pipe.HSet(ctx, profilesKey(d.cfg.KeyPrefix), id, profile.Name)
	pipe.HSet(ctx, nameIndexKey(d.cfg.KeyPrefix), profile.Name, id)
	_, err = pipe.Exec(ctx)
	return err
}

// Connect marks a player as connected, caching its profile
func (d *Directory) Connect(ctx context.Context, profile model.Profile) error {
	if err := d.CacheProfile(ctx, profile); err != nil {
		return err
	}
	return d.client.SAdd(ctx, sessionsKey(d.cfg.KeyPrefix), profile.ID.String()).Err()
}

// Disconnect ends a player's session
func (d *Directory) Disconnect(ctx context.Context, id uuid.UUID) error {
	return d.client.SRem(ctx, sessionsKey(d.cfg.KeyPrefix), id.String()).Err()
}

// Subscribe returns a subscription to whitelist save notifications
func (d *Directory) Subscribe(ctx context.Context) *redis.PubSub {
	return d.client.Subscribe(ctx, whitelistChannel(d.cfg.KeyPrefix))
}

// Session operations

// ConnectedPlayers returns connected profiles ordered by name
func (d *Directory) ConnectedPlayers(ctx context.Context) ([]model.Profile, error) {
	ids, err := d.client.SMembers(ctx, sessionsKey(d.cfg.KeyPrefix)).Result()
	if err != nil {
		return nil, err
	}

	players := make([]model.Profile, 0, len(ids))
	if len(ids) == 0 {
		return players, nil
	}

	names, err := d.client.HMGet(ctx, profilesKey(d.cfg.KeyPrefix), ids...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range names {
		name, ok := v.(string)
		if !ok {
			// session for a profile missing from the cache
			continue
		}
		id, err := uuid.Parse(ids[i])
		if err != nil {
			continue
		}
		players = append(players, model.Profile{ID: id, Name: name})
	}

	slices.SortFunc(players, func(a, b model.Profile) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return players, nil
}

// User cache operations

func (d *Directory) ProfileByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	name, err := d.client.HGet(ctx, profilesKey(d.cfg.KeyPrefix), id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}
	return &model.Profile{ID: id, Name: name}, nil
}

func (d *Directory) ProfileByName(ctx context.Context, name string) (*model.Profile, error) {
	idStr, err := d.client.HGet(ctx, nameIndexKey(d.cfg.KeyPrefix), name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, model.ErrProfileNotFound
	}
	return d.ProfileByID(ctx, id)
}

// Whitelist operations

// WhitelistedNames returns whitelisted names in sorted order
func (d *Directory) WhitelistedNames(ctx context.Context) ([]string, error) {
	names, err := d.client.HVals(ctx, whitelistKey(d.cfg.KeyPrefix)).Result()
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	slices.Sort(names)
	return names, nil
}

func (d *Directory) IsWhitelisted(ctx context.Context, profile model.Profile) (bool, error) {
	return d.client.HExists(ctx, whitelistKey(d.cfg.KeyPrefix), profile.ID.String()).Result()
}

func (d *Directory) AddToWhitelist(ctx context.Context, profile model.Profile) error {
	return d.client.HSet(ctx, whitelistKey(d.cfg.KeyPrefix), profile.ID.String(), profile.Name).Err()
}

func (d *Directory) RemoveFromWhitelist(ctx context.Context, profile model.Profile) error {
	return d.client.HDel(ctx, whitelistKey(d.cfg.KeyPrefix), profile.ID.String()).Err()
}

// SaveWhitelist notifies the game server that the whitelist changed. Redis
// itself is the store, so nothing else needs writing.
func (d *Directory) SaveWhitelist(ctx context.Context) error {
	return d.client.Publish(ctx, whitelistChannel(d.cfg.KeyPrefix), "saved").Err()
}
