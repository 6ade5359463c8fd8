/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// lumberjilld reads newline-delimited JSON log records on stdin, runs
// them through the configured admission chain, and forwards admitted
// records as notifications.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/lumberjill/pkg/config"
	"github.com/carverauto/lumberjill/pkg/dispatch"
	"github.com/carverauto/lumberjill/pkg/handler"
	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/notify"
	"github.com/carverauto/lumberjill/pkg/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/lumberjill/lumberjill.json", "Path to config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg dispatch.Config

	bootLog, err := logger.New(nil)
	if err != nil {
		return err
	}

	if err := config.NewConfig(bootLog).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLog, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	chain, err := cfg.BuildFilter(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to assemble filter chain: %w", err)
	}

	sender := buildSender(&cfg, appLog)
	emailer := handler.NewEmailHandler(sender, cfg.Notify.From, cfg.Notify.To, cfg.Notify.History, appLog)

	d := dispatch.NewDispatcher(chain, emailer, appLog)

	appLog.Info().
		Str("version", version.GetFullVersion()).
		Strs("filters", chain.Names()).
		Bool("notifications_enabled", cfg.Notify.Enabled).
		Msg("lumberjilld started")

	return d.Run(ctx, os.Stdin)
}

// buildSender picks the transports the config names. With no backend
// configured the noop sender keeps the pipeline observable without
// sending anything.
func buildSender(cfg *dispatch.Config, log logger.Logger) notify.Sender {
	var senders []notify.Sender

	if cfg.Notify.SMTP != nil {
		senders = append(senders, notify.NewSMTPSender(cfg.Notify.SMTP, cfg.Notify.Enabled, log))
	}

	if cfg.Notify.Webhook != nil {
		senders = append(senders, notify.NewWebhookSender(cfg.Notify.Webhook, cfg.Notify.Enabled, log))
	}

	if len(senders) == 0 {
		return notify.NewNoopSender(log)
	}

	if len(senders) == 1 {
		return senders[0]
	}

	return notify.NewMultiSender(senders...)
}
