package messaging

import (
	"fmt"

	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"
)

const (
	DriverNone     = "none"
	DriverRabbitMQ = "rabbitmq"
	DriverKafka    = "kafka"
)

// NewPublisher picks the broker named by EVENTS_DRIVER.
func NewPublisher(cfg config.EventsConfig) (shared.EventPublisher, error) {
	switch cfg.Driver {
	case DriverNone, "":
		return NewLogPublisher(), nil
	case DriverRabbitMQ:
		p, err := NewRabbitPublisher(cfg.RabbitMQURL, cfg.Exchange)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverKafka:
		p, err := NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
