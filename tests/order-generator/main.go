package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publishes random order.created events so the product service stock
// consumer can be exercised without running the order service.

type orderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderEvent struct {
	Type        string      `json:"type"`
	OrderID     string      `json:"orderId"`
	UserID      string      `json:"userId"`
	Status      string      `json:"status"`
	Items       []orderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
}

var productIDs = []string{
	"6f1f2b3a-0001-4b9e-8a55-000000000001",
	"6f1f2b3a-0002-4b9e-8a55-000000000002",
	"6f1f2b3a-0003-4b9e-8a55-000000000003",
	"6f1f2b3a-0004-4b9e-8a55-000000000004",
}

func generateRandomEvent() orderEvent {
	count := rand.Intn(3) + 1
	items := make([]orderItem, 0, count)
	total := 0.0
	for i := 0; i < count; i++ {
		price := float64(rand.Intn(10000)+100) / 100
		qty := rand.Intn(5) + 1
		items = append(items, orderItem{
			ProductID: productIDs[rand.Intn(len(productIDs))],
			Quantity:  qty,
			Price:     price,
		})
		total += price * float64(qty)
	}

	return orderEvent{
		Type:        "order.created",
		OrderID:     uuid.NewString(),
		UserID:      uuid.NewString(),
		Status:      "pending",
		Items:       items,
		TotalAmount: total,
	}
}

func main() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "order-events"
	}

	writer := &kafka.Writer{
		Addr:  kafka.TCP(brokers),
		Topic: topic,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			event := generateRandomEvent()
			data, err := json.Marshal(event)
			if err != nil {
				log.Println("failed to marshal event:", err)
				continue
			}
			err = writer.WriteMessages(ctx, kafka.Message{
				Key:   []byte(event.OrderID),
				Value: data,
			})
			if err != nil {
				log.Println("failed to write event:", err)
				continue
			}
			fmt.Println("event published", event.OrderID)
		case <-ctx.Done():
			return
		}
	}
}
