package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"order-desk/internal/configs"
	"order-desk/internal/delivery/kafka"
)

// Publishes every draft of DRAFTS_FILE_PATH (a JSON array) as one message
// on the intake topic.
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env loaded: %s", err)
	}

	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %s", err)
	}
	if err := cfg.SetupLogging(); err != nil {
		logrus.Fatalf("logging: %s", err)
	}
	logrus.Print("config loaded")

	body, err := os.ReadFile(cfg.DraftsFilePath)
	if err != nil {
		logrus.Fatalf("read drafts file: %s", err)
	}

	var drafts []json.RawMessage
	if err := json.Unmarshal(body, &drafts); err != nil {
		logrus.Fatalf("drafts file must hold a JSON array: %s", err)
	}

	pub := kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaIntakeTopic)
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			logrus.Errorf("publisher close: %v", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i, d := range drafts {
		if err := pub.Publish(ctx, "", d); err != nil {
			logrus.Fatalf("publish draft %d: %s", i, err)
		}
	}
	logrus.Printf("published %d drafts to %s", len(drafts), cfg.KafkaIntakeTopic)
}
