// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type PickupAssignEvent struct {
	PickupID uuid.UUID `json:"pickup_id"`
	Attempt  int       `json:"attempt"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	pickupID := flag.String("pickup", "", "Pickup ID to reassign (random if empty)")
	attempt := flag.Int("attempt", 1, "Assignment attempt number")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	id := uuid.New()
	if *pickupID != "" {
		parsed, err := uuid.Parse(*pickupID)
		if err != nil {
			log.Fatalf("Invalid pickup ID: %v", err)
		}
		id = parsed
	}

	event := PickupAssignEvent{
		PickupID: id,
		Attempt:  *attempt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:pickup:assign",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:pickup:assign\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Pickup ID: %s\n", event.PickupID)
	fmt.Printf("   Attempt: %d\n", event.Attempt)

	// Ожидание обработки воркером: сообщение считается обработанным,
	// когда воркер подтвердил его и в стриме не осталось pending
	fmt.Printf("\n⏳ Waiting for the assignment worker to ack the message...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for the worker; is it running?")
			return
		case <-ticker.C:
			pending, err := client.XPending(ctx, "stream:pickup:assign", "pickup-assignment-workers").Result()
			if err != nil && err != redis.Nil {
				continue
			}
			if pending != nil && pending.Count == 0 {
				fmt.Printf("✅ Message acked by the worker\n")
				return
			}
		}
	}
}
