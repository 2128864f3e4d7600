package di

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"crcl-backend/application/ports"
	"crcl-backend/application/services"
	domainconfig "crcl-backend/domain/config"
	"crcl-backend/infrastructure/config"
	"crcl-backend/infrastructure/identity"
	"crcl-backend/infrastructure/persistence/memory"
	"crcl-backend/infrastructure/persistence/postgres"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	Repositories *Repositories
	Identity     ports.IdentityProvider
	CircleGraph  *services.CircleGraph
	Scorer       *services.CredibilityScorer
	Composer     *services.FeedComposer
}

// Close releases held resources
func (c *Container) Close() {
	if c.Repositories != nil {
		c.Repositories.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}

// Repositories groups the storage collaborator implementations
type Repositories struct {
	Users   ports.UserRepository
	Circles ports.CircleRepository
	Content ports.ContentRepository
	Trust   ports.TrustRepository

	pool *pgxpool.Pool
}

// Close shuts the connection pool down, if one was opened
func (r *Repositories) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// ProvideLogger creates the application logger
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// ProvideDomainConfig loads the engine's business constants
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	dc := domainconfig.LoadDomainConfig(cfg.Environment)
	if err := dc.Validate(); err != nil {
		return nil, err
	}
	return dc, nil
}

// ProvideRepositories connects to the configured storage backend. With no
// DATABASE_URL outside production the in-memory store serves all tables.
func ProvideRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Repositories, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("no DATABASE_URL configured, using in-memory store")
		store := memory.NewStore()
		return &Repositories{
			Users:   store,
			Circles: store,
			Content: store,
			Trust:   store,
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Users:   postgres.NewUserRepository(pool),
		Circles: postgres.NewCircleRepository(pool),
		Content: postgres.NewContentRepository(pool),
		Trust:   postgres.NewTrustRepository(pool),
		pool:    pool,
	}, nil
}

// ProvideIdentityProvider creates the managed auth backend client
func ProvideIdentityProvider(cfg *config.Config, logger *zap.Logger) ports.IdentityProvider {
	return identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityServiceKey, cfg.IdentityTimeout, logger)
}

// ProvideCircleGraph creates the circle graph service
func ProvideCircleGraph(repos *Repositories, logger *zap.Logger) *services.CircleGraph {
	return services.NewCircleGraph(repos.Users, repos.Circles, logger)
}

// ProvideCredibilityScorer creates the scorer service
func ProvideCredibilityScorer(repos *Repositories, graph *services.CircleGraph, dc *domainconfig.DomainConfig, logger *zap.Logger) *services.CredibilityScorer {
	return services.NewCredibilityScorer(repos.Users, repos.Content, repos.Trust, graph, dc, logger)
}

// ProvideFeedComposer creates the feed composer service
func ProvideFeedComposer(repos *Repositories, graph *services.CircleGraph, scorer *services.CredibilityScorer, dc *domainconfig.DomainConfig, logger *zap.Logger) *services.FeedComposer {
	return services.NewFeedComposer(repos.Users, repos.Content, graph, scorer, dc, logger)
}
