/*
 * Copyright 2025 tomoncle.
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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tomoncle/storyhub/config"
	"github.com/tomoncle/storyhub/controller"
	"github.com/tomoncle/storyhub/database"
	_ "github.com/tomoncle/storyhub/model"
	"github.com/tomoncle/storyhub/server"
	"github.com/tomoncle/storyhub/service"
	"github.com/tomoncle/storyhub/utils"
)

var (
	configPath string
	logger     = utils.NewLogger("STORYHUB")
)

var rootCmd = &cobra.Command{
	Use:           "storyhub",
	Short:         "storyhub - a CRUD API for stories and users",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		manager, err := database.Open(ctx, &cfg.Database, database.NewLogger())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer manager.Disconnect()

		db := manager.GetDB()
		srv := server.NewServer(
			controller.NewStoryController(service.NewStoryService(db)),
			controller.NewUserController(service.NewUserService(db)),
			manager,
		)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start(server.Options{
				Port:         cfg.Server.Port,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			})
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
			logger.Info("shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("goodbye!")
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the tables and indexes, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbCfg := cfg.Database
		dbCfg.MigrateConfig.EnableMigrateOnStartup = false
		dbCfg.ConnectionConfig.HealthCheckInterval = 0

		ctx := cmd.Context()
		manager, err := database.Open(ctx, &dbCfg, database.NewLogger())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer manager.Disconnect()

		if err := manager.RunMigrations(ctx); err != nil {
			return err
		}
		logger.Info("database schema is up to date")
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	utils.ConfigureConsoleLogFormat(cfg.Log.Format)
	utils.ConfigureLogLevel(cfg.Log.Level)
	return cfg, nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
