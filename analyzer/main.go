package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"

	"tripstats/analyzer/config"
	"tripstats/communication"
)

const logLevelEnvVarName = "LOG_LEVEL"

// InitLogger Receives the log level to be set in logrus as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   false,
	}
	logrus.SetFormatter(customFormatter)
	logrus.SetLevel(level)
	return nil
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	analyzerConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("error loading analyzer config: %s", err)
	}

	logLevel := analyzerConfig.LogLevel
	if envLevel := os.Getenv(logLevelEnvVarName); envLevel != "" {
		logLevel = envLevel
	}
	if err := InitLogger(logLevel); err != nil {
		log.Fatalf("%s", err)
	}

	if err := run(analyzerConfig); err != nil {
		log.Fatalf("error running analyzer: %s", err)
	}

	log.Debug("[analyzer] Finish main.go")
}

func run(analyzerConfig *config.AnalyzerConfig) error {
	analyzer := NewAnalyzer(analyzerConfig, os.Stdout)

	if analyzerConfig.Rabbit.Enabled {
		rabbitMQ, err := communication.NewRabbitMQ(os.Getenv(communication.RabbitUrlEnvVarName))
		if err != nil {
			return err
		}
		defer func() {
			if err := rabbitMQ.KillBadBunny(); err != nil {
				log.Error(err)
			}
		}()

		err = rabbitMQ.DeclareExchanges([]communication.ExchangeDeclarationConfig{analyzerConfig.Rabbit.Exchange})
		if err != nil {
			return err
		}
		analyzer.WithPublisher(communication.NewSummaryPublisher(rabbitMQ, analyzerConfig.Rabbit.Publishing))
	}

	_, err := analyzer.Run(context.Background())
	return err
}
