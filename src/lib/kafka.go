package lib

import (
	"encoding/json"
	"log"
	"os"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var producer *kafka.Producer

func KafkaEnabled() bool {
	return os.Getenv("KAFKA_BROKER") != ""
}

func getKafkaProducer() (*kafka.Producer, error) {
	if producer != nil {
		return producer, nil
	}
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
		"client.id":         "deskpool-api",
		"acks":              "all",
	})
	if err != nil {
		log.Printf("Error initializing kafka producer: %s\n", err.Error())
		return nil, err
	}
	producer = p
	return p, nil
}

// KafkaProduceMessage publishes fire-and-forget; delivery failures are
// logged, never surfaced to the request that triggered the event.
func KafkaProduceMessage(topic string, payload map[string]any) error {
	p, err := getKafkaProducer()
	if err != nil {
		return err
	}
	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error serializing event payload: %s\n", err.Error())
		return err
	}
	err = p.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          value,
	}, nil)
	if err != nil {
		log.Printf("Error producing message on %s: %s\n", topic, err.Error())
		return err
	}
	return nil
}
