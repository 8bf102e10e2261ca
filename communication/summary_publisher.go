package communication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"tripstats/domain/business/runsummary"
)

const (
	publisherStage  = "publisher"
	publishTimeout  = 5 * time.Second
	contentTypeJson = "application/json"
)

var (
	ErrMarshallingSummary = errors.New("error marshalling run summary")
	ErrPublishingSummary  = errors.New("error publishing run summary")
)

// ExchangePublisher is the part of RabbitMQ the summary publisher needs
type ExchangePublisher interface {
	PublishMessageInExchange(ctx context.Context, exchange string, routingKey string, message []byte, contentType string) error
}

// SummaryPublisher sends run summaries to an exchange
type SummaryPublisher struct {
	publisher ExchangePublisher
	config    PublishingConfig
}

func NewSummaryPublisher(publisher ExchangePublisher, config PublishingConfig) *SummaryPublisher {
	if config.ContentType == "" {
		config.ContentType = contentTypeJson
	}
	return &SummaryPublisher{
		publisher: publisher,
		config:    config,
	}
}

// Publish marshals the summary as JSON and publishes it with the configured routing key
func (sp *SummaryPublisher) Publish(ctx context.Context, summary *runsummary.RunSummary) error {
	summaryBytes, err := json.Marshal(summary)
	if err != nil {
		log.Error(sp.getLogMessage("Publish", "error marshalling summary", err))
		return fmt.Errorf("%w: %s", ErrMarshallingSummary, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = sp.publisher.PublishMessageInExchange(ctx, sp.config.Exchange, sp.config.RoutingKey, summaryBytes, sp.config.ContentType)
	if err != nil {
		log.Error(sp.getLogMessage("Publish", "error sending summary", err))
		return fmt.Errorf("%w: %s", ErrPublishingSummary, err)
	}

	log.Info(sp.getLogMessage("Publish", fmt.Sprintf("summary of run %s sent to %s", summary.GetRunID(), sp.config.Exchange), nil))
	return nil
}

func (sp *SummaryPublisher) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[stage: %s][method: %s][status: ERROR] %s: %s", publisherStage, method, message, err.Error())
	}
	return fmt.Sprintf("[stage: %s][method: %s][status: OK] %s", publisherStage, method, message)
}
