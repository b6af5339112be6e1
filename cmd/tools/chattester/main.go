// Command chattester exercises the chat endpoint of a running backend.
// It sends one message per invocation and prints the assistant's reply,
// which makes persona behavior easy to eyeball without a frontend.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] could not load .env, using system environment: %v", err)
	}

	baseURL := flag.String("url", "http://localhost:5000/api", "backend API base URL")
	mode := flag.String("mode", "developer", "persona mode: developer, designer or mentor")
	message := flag.String("message", "", "message to send")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")

	flag.Parse()

	if *message == "" {
		flag.Usage()
		log.Fatal("provide a message with -message")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	reply, err := sendChat(ctx, *baseURL, *mode, *message)
	if err != nil {
		log.Fatalf("chat request failed: %v", err)
	}

	fmt.Printf("[%s] %s\n", *mode, reply)
}

func sendChat(ctx context.Context, baseURL, mode, message string) (string, error) {
	payload, err := json.Marshal(map[string]string{"message": message, "mode": mode})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		Response string `json:"response"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Message)
	}

	return body.Response, nil
}
