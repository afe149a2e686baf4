package messaging

import (
	"fmt"
	"log"

	"eduvoyage-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ connects to the notification queue broker. Callers skip this
// entirely when no broker host is configured; the notifier then falls back to
// direct webhook dispatch.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	connectionString := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
	conn, err := amqp091.Dial(connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ: %s", err.Error())
	}
	return conn
}
