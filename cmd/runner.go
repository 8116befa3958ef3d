package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/blossomlabs/blossom-cli/internal/repositories"
	"github.com/blossomlabs/blossom-cli/internal/services"
	"github.com/blossomlabs/blossom-cli/internal/session"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/blossomlabs/blossom-cli/internal/tasks"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	client     *services.Client
	api        *services.APIService
	db         *sql.DB
	creds      *repositories.CredentialRepository
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.DashboardEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     *services.Client
	API        *services.APIService
	DB         *sql.DB
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Client == nil {
		opts.Client = services.NewClient(opts.Config.API.BaseURL, "", opts.HTTPClient)
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.API.BaseURL, opts.Client.Token(), opts.HTTPClient)
	}

	var creds *repositories.CredentialRepository
	if opts.DB != nil {
		creds = repositories.NewCredentialRepository(opts.DB)
	}

	engine := tasks.NewDashboardEngine(opts.Client, opts.API)

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		api:        opts.API,
		db:         opts.DB,
		creds:      creds,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     engine,
	}
}

// SetLogger replaces the Runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, hooksCommand, formatsCommand, trendsCommand,
		discoveryCommand, socialCommand, supportCommand, onboardingCommand,
		billingCommand, cacheCommand, dumpCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// database lazily opens the local cache database configured in config.toml.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.db = db
	r.creds = repositories.NewCredentialRepository(db)
	return db, nil
}

// credentials returns the credential store, opening the database if needed.
func (r *Runner) credentials() (*repositories.CredentialRepository, error) {
	if r.creds != nil {
		return r.creds, nil
	}
	if _, err := r.database(); err != nil {
		return nil, err
	}
	return r.creds, nil
}

// requireSession resolves the caller's identity from the configured or stored token.
//
// Commands that talk to gated endpoints call this first so the failure is a clear
// "run blossom auth login" instead of a 401 from the backend.
func (r *Runner) requireSession() (*session.Session, error) {
	token := r.client.Token()
	if token == "" {
		creds, err := r.credentials()
		if err != nil {
			return nil, err
		}
		stored, err := creds.Get()
		if err != nil {
			return nil, fmt.Errorf("%w: run 'blossom auth login' first", shared.ErrNotAuthenticated)
		}
		token = stored.Token
		r.client.SetToken(token)
	}

	sess, err := session.Parse(token)
	if err != nil {
		return nil, err
	}
	if sess.Expired() {
		return nil, fmt.Errorf("%w: run 'blossom auth login' again", shared.ErrTokenExpired)
	}
	return sess, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
