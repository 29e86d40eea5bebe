package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/contactsync/internal/config"
	"github.com/xavierca1/contactsync/internal/entity"
	"github.com/xavierca1/contactsync/internal/infra/httpclient"
	"github.com/xavierca1/contactsync/internal/infra/integration/freshdesk"
	"github.com/xavierca1/contactsync/internal/infra/integration/github"
	"github.com/xavierca1/contactsync/internal/infra/logger"
	"github.com/xavierca1/contactsync/internal/infra/mail"
	"github.com/xavierca1/contactsync/internal/infra/metrics"
	"github.com/xavierca1/contactsync/internal/infra/queue"
	"github.com/xavierca1/contactsync/internal/usecase"
)

func run(ctx context.Context, stdout, stderr io.Writer, handle, subdomain string, f flags) error {
	// 1. Config. Missing tokens stop us here, before any request.
	cfg, err := config.Load(config.Options{
		File:      f.configFile,
		Subdomain: subdomain,
		Timeout:   f.timeout,
		Debug:     f.debug,
	})
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Out: stderr})
	runID := uuid.NewString()

	// 2. Clients
	ghClient := github.NewClient(
		cfg.GitHub.Token,
		cfg.GitHub.BaseURL,
		metrics.InstrumentDoer(github.ServiceName, httpclient.New(cfg.HTTP.Timeout)),
		log,
	)
	fdClient := freshdesk.NewClient(
		cfg.Freshdesk.Token,
		cfg.Freshdesk.Subdomain,
		cfg.Freshdesk.BaseURL,
		metrics.InstrumentDoer(freshdesk.ServiceName, httpclient.New(cfg.HTTP.Timeout)),
		log,
	)

	// 3. Optional event publisher
	var events usecase.EventPublisher
	if cfg.Events.RabbitMQURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.Events.RabbitMQURL)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ RabbitMQ unavailable, contact-synced event disabled")
		} else {
			defer rabbit.Close()
			events = queue.NewProducer(rabbit.Ch)
		}
	}

	// 4. Sync
	uc := usecase.NewSyncContactUseCase(ghClient, fdClient, events, log)
	updateMode := usecase.UpdateKeepExisting
	if f.propagate {
		updateMode = usecase.UpdateFromDirectory
	}

	output, err := uc.Execute(ctx, usecase.SyncContactInput{
		Handle:     handle,
		RunID:      runID,
		DryRun:     f.dryRun,
		UpdateMode: updateMode,
	})

	outcome := "failed"
	if err == nil {
		outcome = outcomeLabel(output.Outcome)
	}
	metrics.RecordSyncRun(outcome)
	pushMetrics(ctx, cfg.Metrics, log)

	if err != nil {
		log.Error().Err(err).Str("run_id", runID).Str("code", string(entity.CodeOf(err))).Msg("❌ Contact sync failed")
		sendAlert(cfg.Alert, log, mail.FailureAlertData{
			RunID:     runID,
			Handle:    handle,
			Subdomain: cfg.Freshdesk.Subdomain,
			ErrorCode: string(entity.CodeOf(err)),
			Error:     err.Error(),
		})
		return err
	}

	fmt.Fprintln(stdout, resultMessage(output))
	return nil
}

func resultMessage(output *usecase.SyncContactOutput) string {
	verb := "updated"
	if output.Outcome == entity.OutcomeCreated {
		verb = "created"
	}
	if output.DryRun {
		return fmt.Sprintf("[dry-run] Would have %s contact.", verb)
	}
	return fmt.Sprintf("Successfully %s contact.", verb)
}

func outcomeLabel(o entity.SyncOutcome) string {
	if o == entity.OutcomeCreated {
		return "created"
	}
	return "updated"
}

func pushMetrics(ctx context.Context, cfg config.MetricsConfig, log zerolog.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}
	if err := metrics.Push(ctx, cfg.PushgatewayURL, cfg.Job); err != nil {
		log.Warn().Err(err).Msg("⚠️ Could not push metrics")
	}
}

// newAlertDialer is swapped in tests to capture alert mail.
var newAlertDialer = func(cfg config.AlertConfig) mail.Dialer {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
}

func sendAlert(cfg config.AlertConfig, log zerolog.Logger, data mail.FailureAlertData) {
	if !cfg.Enabled() {
		return
	}
	sender := mail.NewEmailSender(newAlertDialer(cfg), cfg.From, cfg.To)
	if err := sender.SendFailureAlert(data); err != nil {
		log.Warn().Err(err).Msg("⚠️ Could not send failure alert")
	}
}
