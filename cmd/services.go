package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/config"
	"github.com/thesumanshah/tfnsw-assistant/pkg/favorites"
	"github.com/thesumanshah/tfnsw-assistant/pkg/intent"
	"github.com/thesumanshah/tfnsw-assistant/pkg/offline"
	"github.com/thesumanshah/tfnsw-assistant/pkg/planner"
	"github.com/thesumanshah/tfnsw-assistant/pkg/redisclient"
	"github.com/thesumanshah/tfnsw-assistant/pkg/stations"
	"github.com/thesumanshah/tfnsw-assistant/pkg/tfnsw"
	"github.com/thesumanshah/tfnsw-assistant/pkg/tui"
)

// services wires the components every command draws from.
type services struct {
	cfg       *config.AppConfig
	clock     clock.Clock
	gazetteer *stations.Gazetteer
	redis     *redis.Client
	extractor intent.Extractor
	resolver  *planner.Resolver
	offline   *offline.Resolver
	favorites *favorites.Set
}

func newServices(ctx context.Context) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	s := &services{
		cfg:       cfg,
		clock:     clock.RealClock{},
		gazetteer: stations.Default(),
	}

	if env.RedisConfigured() || cfg.Backend() == config.FavoritesRedis {
		s.redis, err = redisclient.Connect(ctx, env)
		if err != nil {
			if cfg.Backend() == config.FavoritesRedis {
				return nil, err
			}
			log.Warn().Err(err).Msg("Continuing without redis")
		}
	}

	s.extractor = newExtractor(s.clock, s.redis)
	s.resolver = planner.NewResolver(s.gazetteer, tfnsw.NewClient(env.TfNSWAPIKey), s.clock)

	table := offline.Default()
	if cfg.OfflineSchedulePath != "" {
		table, err = offline.Load(cfg.OfflineSchedulePath)
		if err != nil {
			return nil, err
		}
	}
	s.offline = offline.NewResolver(table, s.clock)

	store, err := s.favoritesStore()
	if err != nil {
		return nil, err
	}
	s.favorites, err = favorites.Open(ctx, store, s.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to open favourites: %w", err)
	}

	return s, nil
}

// newExtractor chains the hosted model, cached when redis is available, in
// front of the pattern matcher.
func newExtractor(c clock.Clock, client *redis.Client) intent.Extractor {
	pattern := intent.NewPatternExtractor(c)

	hosted := intent.NewHostedExtractor(env.IntentAPIKey, env.IntentModel, c)
	if !hosted.Available() {
		log.Debug().Msg("No intent model key configured, using pattern matching only")
		return intent.NewFallbackExtractor(nil, pattern)
	}

	var primary intent.Extractor = hosted
	if client != nil {
		primary = intent.NewCachedExtractor(hosted, client, c)
	}
	return intent.NewFallbackExtractor(primary, pattern)
}

func (s *services) favoritesStore() (favorites.Store, error) {
	if s.cfg.Backend() == config.FavoritesRedis {
		return favorites.NewRedisStore(s.redis, favorites.DefaultRedisKey), nil
	}

	path, err := favorites.DefaultPath()
	if err != nil {
		return nil, err
	}
	return favorites.NewFileStore(path), nil
}

func (s *services) session(offlineMode bool) *chat.Session {
	session := chat.NewSession(s.extractor, s.resolver, s.offline, s.favorites)
	session.SetOffline(offlineMode)
	return session
}

// trips is the resolver used for planning outside a conversation.
func (s *services) trips(offlineMode bool) chat.Resolver {
	if offlineMode {
		return offline.Trips{Resolver: s.offline}
	}
	return s.resolver
}

func (s *services) tuiApp(offlineMode bool) *tui.App {
	return &tui.App{
		Session:   s.session(offlineMode),
		Gazetteer: s.gazetteer,
		Favorites: s.favorites,
		Trips:     s.trips(offlineMode),
		Clock:     s.clock,
	}
}

func (s *services) Close() {
	if s.redis != nil {
		s.redis.Close()
	}
}
