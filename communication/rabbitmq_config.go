package communication

// ExchangeDeclarationConfig contains the parameters to declare a RabbitMQ exchange
type ExchangeDeclarationConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Durable     bool   `yaml:"durable"`
	AutoDeleted bool   `yaml:"auto_deleted"`
	Internal    bool   `yaml:"internal"`
	NoWait      bool   `yaml:"no_wait"`
}

// PublishingConfig config use it for publishing run summaries in a RabbitMQ exchange
type PublishingConfig struct {
	Exchange    string `yaml:"exchange"`
	RoutingKey  string `yaml:"routing_key"`
	ContentType string `yaml:"content_type"`
}

// DefaultExchangeConfig exchange the analyzer declares when no other is configured
func DefaultExchangeConfig() ExchangeDeclarationConfig {
	return ExchangeDeclarationConfig{
		Name:    "trip-summaries",
		Type:    "topic",
		Durable: true,
	}
}

func DefaultPublishingConfig() PublishingConfig {
	return PublishingConfig{
		Exchange:    "trip-summaries",
		RoutingKey:  "summary.analyzer",
		ContentType: "application/json",
	}
}
