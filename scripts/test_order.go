//go:build ignore

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func main() {
	gatewayURL := flag.String("gateway", "http://localhost:8080", "Gateway base URL")
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", "stream:taxi:order:placed", "Order events stream")
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

	// Последний id в стриме, ждём только новые события
	lastID := "$"
	if msgs, err := client.XRevRangeN(ctx, *stream, "+", "-", 1).Result(); err == nil && len(msgs) > 0 {
		lastID = msgs[0].ID
	}

	// Тестовый заказ (Минск, Немига -> аэропорт)
	order := map[string]interface{}{
		"points_order": []map[string]interface{}{
			{"coords": map[string]float64{"lat": 53.9045, "lng": 27.5534}, "city": "Минск", "street": "Немига", "home": "3"},
			{"coords": map[string]float64{"lat": 53.8825, "lng": 28.0307}, "label": "Аэропорт"},
		},
		"phone":   "+375290000000",
		"comment": "test order, please ignore",
	}

	body, err := json.Marshal(order)
	if err != nil {
		log.Fatalf("Failed to marshal order: %v", err)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *gatewayURL+"/order", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Failed to send order: %v", err)
	}
	respBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	fmt.Printf("✅ Order sent\n")
	fmt.Printf("   Request ID: %s\n", requestID)
	fmt.Printf("   Status: %d\n", resp.StatusCode)
	fmt.Printf("   Response: %s\n", respBody)

	fmt.Printf("\n⏳ Waiting for event in %s...\n", *stream)

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{*stream, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil && err != redis.Nil {
			log.Fatalf("Failed to read stream: %v", err)
		}

		for _, s := range results {
			for _, msg := range s.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var event map[string]interface{}
				if err := json.Unmarshal([]byte(dataStr), &event); err != nil {
					continue
				}

				if event["request_id"] == requestID {
					fmt.Printf("\n✅ Event received!\n")
					prettyJSON, _ := json.MarshalIndent(event, "", "  ")
					fmt.Printf("%s\n", prettyJSON)
					return
				}
			}
		}
	}

	fmt.Println("❌ Timeout waiting for event")
}
