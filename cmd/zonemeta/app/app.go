// Package app provides the application context and dependency management
// for the zonemeta CLI. It centralizes configuration, builds the catalog
// service and text-generation backend, and owns the lazily created manager.
package app

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"

	"github.com/agentstation/zonemeta"
	"github.com/agentstation/zonemeta/cmd/application"
	"github.com/agentstation/zonemeta/internal/datazone"
	"github.com/agentstation/zonemeta/internal/textgen"
	"github.com/agentstation/zonemeta/pkg/catalog"
	"github.com/agentstation/zonemeta/pkg/enhancer"
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/reconcile"
)

// App represents the zonemeta application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Injected collaborators; nil means build from config
	service catalog.Service
	backend enhancer.TextGenerator

	// Manager instance (lazy-initialized, singleton)
	mu      sync.Mutex
	manager *zonemeta.Manager
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Manager returns the sync manager, creating it on first use. Creation
// connects to the catalog and resolves the domain's form type revisions.
func (a *App) Manager(ctx context.Context) (*zonemeta.Manager, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.manager != nil {
		return a.manager, nil
	}

	opts, err := a.managerOptions()
	if err != nil {
		return nil, err
	}

	var awsCfg *aws.Config
	loadAWS := func() (*aws.Config, error) {
		if awsCfg == nil {
			cfg, err := datazone.LoadConfig(ctx, a.config.Region)
			if err != nil {
				return nil, err
			}
			awsCfg = &cfg
		}
		return awsCfg, nil
	}

	service := a.service
	if service == nil {
		cfg, err := loadAWS()
		if err != nil {
			return nil, err
		}
		service = datazone.NewFromConfig(*cfg, a.config.EndpointURL)
	}

	backend := a.backend
	if backend == nil {
		tgCfg := a.textgenConfig()
		if tgCfg.Backend == textgen.BackendBedrock {
			if tgCfg.AWS, err = loadAWS(); err != nil {
				return nil, err
			}
		}
		if backend, err = textgen.New(ctx, tgCfg); err != nil {
			return nil, err
		}
	}
	if backend != nil {
		opts = append(opts, zonemeta.WithGenerator(enhancer.NewGenerator(backend,
			enhancer.WithMaxTokens(a.config.GeneratorMaxTokens),
			enhancer.WithTimeout(a.config.GeneratorTimeout),
		)))
	}

	manager, err := zonemeta.New(ctx, service, opts...)
	if err != nil {
		return nil, err
	}

	a.manager = manager
	return manager, nil
}

func (a *App) managerOptions() ([]zonemeta.Option, error) {
	overwrite, err := enhancer.ParseOverwritePolicy(a.config.Overwrite)
	if err != nil {
		return nil, err
	}
	duplicates, err := reconcile.ParseDuplicatePolicy(a.config.Duplicates)
	if err != nil {
		return nil, err
	}

	opts := []zonemeta.Option{
		zonemeta.WithDomain(a.config.DomainID),
		zonemeta.WithOverwritePolicy(overwrite),
		zonemeta.WithDuplicatePolicy(duplicates),
		zonemeta.WithRevisionPrefix(a.config.RevisionPrefix),
	}
	if a.config.Concurrency != 0 {
		opts = append(opts, zonemeta.WithConcurrency(a.config.Concurrency))
	}
	return opts, nil
}

func (a *App) textgenConfig() textgen.Config {
	return textgen.Config{
		Backend:          a.config.Generator,
		Model:            a.config.GeneratorModel,
		GeminiAPIKey:     a.config.GeminiAPIKey,
		GoogleProject:    a.config.GoogleProject,
		GoogleLocation:   a.config.GoogleLocation,
		OpenAIAPIKey:     a.config.OpenAIAPIKey,
		OpenAIBaseURL:    a.config.OpenAIBaseURL,
		OpenAIAuthScheme: a.config.OpenAIAuth,
	}
}

// Shutdown releases application resources. The manager holds no background
// work, so this only drops it.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	a.manager = nil
	a.mu.Unlock()
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithService sets the catalog service instead of connecting to DataZone.
func WithService(service catalog.Service) Option {
	return func(a *App) error {
		a.service = service
		return nil
	}
}

// WithTextGenerator sets the generation backend instead of building one
// from the configuration.
func WithTextGenerator(backend enhancer.TextGenerator) Option {
	return func(a *App) error {
		a.backend = backend
		return nil
	}
}

var _ application.Application = (*App)(nil)
