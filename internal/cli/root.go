// Package cli implements the bookshelf command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bookshelf/internal/apiclient"
	"bookshelf/internal/app"
	"bookshelf/internal/config"
	"bookshelf/internal/credstore"
	"bookshelf/internal/route"
	"bookshelf/internal/session"
	"bookshelf/internal/util"
)

type globalFlags struct {
	configPath string
	baseURL    string
	logLevel   string
}

// env is what every command runs against. It is built once per invocation.
type env struct {
	cfg   config.FileConfig
	store *credstore.Store
	app   *app.App
}

func (e *env) Close() error {
	if e == nil || e.store == nil {
		return nil
	}
	return e.store.Close()
}

// reportedError marks an error whose notice was already printed.
type reportedError struct{ error }

func (r reportedError) Unwrap() error { return r.error }

// program carries state across one invocation of the command tree.
type program struct {
	flags globalFlags
	env   *env
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&program{})
}

func newRootCommand(p *program) *cobra.Command {
	flags := &p.flags
	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Manage your personal bookshelf from the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			built, err := buildEnv(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p.env = built
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default "+config.ConfigPath+")")
	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "bookshelf service URL")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	envFn := func() *env { return p.env }
	root.AddCommand(
		newLoginCommand(envFn),
		newRegisterCommand(envFn),
		newLogoutCommand(envFn),
		newStatusCommand(envFn),
		newProfileCommand(envFn),
		newOpenCommand(envFn),
		newBooksCommand(envFn),
	)
	return root
}

// Execute runs the CLI with args and reports any error not yet shown.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	p := &program{}
	defer func() { _ = p.env.Close() }()
	root := newRootCommand(p)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return err
}

func buildEnv(ctx context.Context, flags *globalFlags, stderr io.Writer) (*env, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.baseURL != "" {
		cfg.APIBaseURL = flags.baseURL
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	logger := util.InitLogger(cfg.LogLevel, cfg.LogFormat, stderr)

	store, err := credstore.Open(credstore.Config{
		Backend:       cfg.CredentialBackend,
		Path:          cfg.CredentialPath,
		Passphrase:    cfg.CredentialPassphrase,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisPrefix:   cfg.RedisPrefix,
		RedisTTL:      cfg.CredentialTTL(),
	})
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	sess := session.New(store, logger)
	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.Timeout(),
		Tokens:  sess,
		Logger:  logger,
	})
	a, err := app.New(app.Config{
		Session:  sess,
		Auth:     client,
		Books:    client,
		Profiles: store,
		Routes:   route.NewTable(cfg.ProtectedRoutes),
		Logger:   logger,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	a.Start(ctx)
	return &env{cfg: cfg, store: store, app: a}, nil
}

// report prints err as a notice and marks it reported.
func report(cmd *cobra.Command, err error, fallback string) error {
	fmt.Fprintln(cmd.ErrOrStderr(), app.NoticeFor(err, fallback))
	return reportedError{err}
}

func notify(cmd *cobra.Command, n app.Notice) {
	fmt.Fprintln(cmd.ErrOrStderr(), n)
}
