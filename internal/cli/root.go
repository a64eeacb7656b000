// Package cli implements the medledger command tree. Each command maps
// one screen of the billing workflow onto the SDK: session handling,
// catalog browsing, invoice composition and the audit trail.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medledger/medledger-go/billing"
	"github.com/medledger/medledger-go/internal/config"
	"github.com/medledger/medledger-go/internal/obs"
)

var rootCmd = &cobra.Command{
	Use:           "medledger",
	Short:         "Hospital billing from the terminal",
	Long:          "medledger drives the hospital billing API: staff sign-in, patient and catalog management, invoice composition and the audit trail.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	client *billing.Client
	logger zerolog.Logger
}

// newApp wires config, observability and the SDK client together.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel)

	var metrics *obs.Metrics
	if cfg.MetricsEnabled {
		metrics = obs.NewMetrics("medledger", nil)
		obs.ServeMetrics(cfg.MetricsAddr, nil, logger)
	}

	client, err := billing.New(cfg.APIBaseURL,
		billing.WithHTTPClient(obs.NewHTTPClient(cfg.HTTPTimeout, metrics)),
		billing.WithLogger(logger),
		billing.WithTokenStore(billing.FileStore{Path: cfg.TokenFile}),
	)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, client: client, logger: logger}, nil
}

// newAuthenticatedApp additionally restores the persisted session and
// fails when no usable session exists.
func newAuthenticatedApp(ctx context.Context) (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	ok, err := a.client.Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return nil, errors.New("not logged in; run 'medledger login' first")
	}
	return a, nil
}

// recordAudit appends an audit entry for a mutating command. Failures
// are logged and swallowed: the mutation itself already succeeded.
func (a *app) recordAudit(ctx context.Context, action, entityType, entityID string, oldValues, newValues map[string]any) {
	err := a.client.Audit.Record(ctx, billing.RecordAuditRequest{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValues:  oldValues,
		NewValues:  newValues,
	})
	if err != nil {
		a.logger.Warn().Err(err).Str("action", action).Msg("audit entry not recorded")
	}
}
