package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/internal/logging"
	"github.com/fivetwenty-io/mas-client/internal/profile"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
	"github.com/fivetwenty-io/mas-client/pkg/masclient"
)

const userAgent = "mas-cli/1.0"

// newLogger builds the CLI logger. --debug lowers the level to debug so the
// exchange logs are shown.
func newLogger(cmd *cobra.Command) mas.Logger {
	level := viper.GetString("log_level")
	if viper.GetBool("debug") {
		level = "debug"
	}

	return logging.NewAdapter(logging.New(logging.Config{
		Level:  level,
		Format: viper.GetString("log_format"),
		Out:    cmd.ErrOrStderr(),
	}))
}

// storeConfig reads the profile store settings. The file backend keeps
// servers.yml next to the config file.
func storeConfig() (*profile.StoreConfig, error) {
	config := &profile.StoreConfig{
		Type: profile.StoreType(viper.GetString("store.type")),
		Path: viper.GetString("store.path"),
	}

	if config.Type == "" {
		config.Type = profile.StoreTypeFile
	}

	if config.Type == profile.StoreTypeFile && config.Path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}

		config.Path = profile.DefaultStoreConfig(dir).Path
	}

	if config.Type == profile.StoreTypeNATS {
		config.NATS = &profile.NATSBucketConfig{
			URL:     viper.GetString("store.nats.url"),
			Bucket:  viper.GetString("store.nats.bucket"),
			Creds:   viper.GetString("store.nats.creds"),
			Timeout: viper.GetDuration("store.nats.timeout"),
		}
	}

	return config, nil
}

func openStore(ctx context.Context) (profile.Store, error) {
	config, err := storeConfig()
	if err != nil {
		return nil, err
	}

	store, err := profile.NewStoreFromConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open server profiles: %w", err)
	}

	return store, nil
}

// resolveServer picks the server named by --server (a profile name or a
// URL) or the current profile.
func resolveServer(ctx context.Context) (*mas.Server, error) {
	ref := viper.GetString("server")
	if strings.Contains(ref, "://") {
		server, err := mas.ParseServer(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid --server: %w", err)
		}

		return server, nil
	}

	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	defer func() { _ = store.Close() }()

	if ref != "" {
		return store.Get(ctx, ref)
	}

	server, err := store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: use 'mas servers add' or --server", constants.ErrNoServersConfigured)
	}

	return server, nil
}

func createClient(cmd *cobra.Command) (mas.Client, error) {
	ctx := cmd.Context()

	server, err := resolveServer(ctx)
	if err != nil {
		return nil, err
	}

	// --debug logs exchanges through the transport's request and response hooks.
	client, err := masclient.New(ctx, &mas.Config{
		Server:          server,
		Logger:          newLogger(cmd),
		UserAgent:       userAgent,
		PageConcurrency: viper.GetInt("concurrency"),
		Debug:           viper.GetBool("debug"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func parseUUIDs(args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(args))

	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", constants.ErrInvalidUUID, arg)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func fullyQualifiedNames(args []string) []mas.FullyQualifiedName {
	names := make([]mas.FullyQualifiedName, len(args))
	for i, arg := range args {
		names[i] = mas.FullyQualifiedName(arg)
	}

	return names
}

// readPassword prompts for a password without echo. It returns "" when
// stdin is not a terminal.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec

	if !term.IsTerminal(fd) {
		return "", nil
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)

	password, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

func optional[T any](value *T) string {
	if value == nil {
		return constants.None
	}

	return fmt.Sprint(*value)
}
