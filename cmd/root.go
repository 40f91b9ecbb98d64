package cmd

import (
	"fmt"
	"os"

	"reviewdb-api/config"
	"reviewdb-api/models"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "reviewdb-api",
	Short: "Content-review REST API",
	Long: `reviewdb-api serves a content-review REST API: users sign up with
email confirmation codes, exchange them for JWT access tokens, and
review and comment on categorized, genre-tagged titles.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the environment, builds the logger and opens the
// database. Shared by every command.
func setup() (*config.Config, *gorm.DB, *logrus.Logger, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found")
	}

	log := newLogger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate schema: %w", err)
	}

	return cfg, db, log, nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
