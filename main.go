package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"newswatch/api"
	"newswatch/common"
	"newswatch/config"
	"newswatch/deduplication"
	"newswatch/factcheck"
	"newswatch/kafka"
	"newswatch/pipeline"
	"newswatch/poster"
	"newswatch/scraper"
	"newswatch/social"
	"newswatch/sources"
	"newswatch/store"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	log.Println("🤖 Newswatch starting...")

	apiKey := os.Getenv("COHERE_API_KEY")
	model := config.GetEnvOrDefault("COHERE_MODEL", "command-r-08-2024")
	gen, err := factcheck.NewCohereGenerator(apiKey, model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize model client: %v", err)
	}

	bloom, err := deduplication.NewRedisBloomFromEnv()
	if err != nil {
		log.Printf("Warning: Redis bloom filter unavailable: %v (cross-cycle fast path disabled)", err)
		bloom = nil
	}
	dedup := deduplication.New(bloom)
	defer dedup.Close()

	autoPoster := poster.New(initializePublisher(), poster.Config{
		MaxPerDay:      config.GetEnvInt("AUTO_POST_MAX_PER_DAY", 5),
		MinCredibility: config.GetEnvFloat("AUTO_POST_MIN_CREDIBILITY", 0.7),
	})

	events := initializeKafka()
	if events != nil {
		defer events.Close()
	}

	p := pipeline.New(pipeline.Options{
		Fetcher: scraper.NewFetcher(),
		Dedup:   dedup,
		Checker: factcheck.New(gen),
		Social:  social.NewScorer(social.NewWatchlistProvider()),
		Poster:  autoPoster,
		Store:   store.New(config.MaxResults, config.MaxProcessedURLs),
		Archive: initializeArchive(),
		Events:  events,
		Catalog: sources.Catalog,
	})

	scheduler := cron.New()
	intervalHours := config.GetEnvInt("FACT_CHECK_INTERVAL_HOURS", 6)
	ingestSpec := fmt.Sprintf("0 */%d * * *", intervalHours)
	if _, err := scheduler.AddFunc(ingestSpec, func() {
		p.RunCycle(context.Background())
	}); err != nil {
		log.Fatalf("❌ Failed to schedule ingest cycle: %v", err)
	}

	postingSpec := fmt.Sprintf("0 %s * * *", joinHours(config.PostingHours))
	if _, err := scheduler.AddFunc(postingSpec, func() {
		p.DrainQueue(context.Background())
	}); err != nil {
		log.Fatalf("❌ Failed to schedule posting slots: %v", err)
	}
	scheduler.Start()
	log.Printf("⏰ Scheduled: ingest %q, posting %q", ingestSpec, postingSpec)

	// First cycle shortly after boot so the API has data without waiting for
	// the next cron tick.
	go func() {
		time.Sleep(10 * time.Second)
		p.RunCycle(context.Background())
	}()

	addr := ":" + config.GetEnvOrDefault("PORT", "3000")
	r := api.NewRouter(p, poster.NewPostGenerator(gen))
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/news")
	log.Println("  GET  /api/fact-check")
	log.Println("  POST /api/analyze")
	log.Println("  GET  /api/social-ready-articles")
	log.Println("  GET  /api/news-summary")
	log.Println("  GET  /api/queue/status")
	log.Println("  POST /api/generate-social-post")
	log.Println("  POST /api/generate-multiple-posts")

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// initializePublisher returns the X publish client if a bearer token is
// configured. Without one, posts queue but never leave the process.
func initializePublisher() poster.Publisher {
	token := strings.TrimSpace(os.Getenv("X_BEARER_TOKEN"))
	if token == "" {
		log.Println("⚠️  X_BEARER_TOKEN not set; auto-posting disabled")
		return nil
	}
	client, err := poster.NewXClient(token)
	if err != nil {
		log.Printf("Warning: failed to init publish client: %v (auto-posting disabled)", err)
		return nil
	}
	return client
}

// initializeArchive returns the S3 analysis archive if configured via env.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_USE_PATH_STYLE=true
func initializeArchive() *common.AnalysisArchive {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		log.Println("S3 not configured; analysis archive disabled")
		return nil
	}

	cfg := common.S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	client, err := common.NewS3(context.Background(), cfg)
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (archive disabled)", err)
		return nil
	}
	return common.NewAnalysisArchive(client, bucket)
}

// initializeKafka returns the analysis event producer if brokers are
// configured via KAFKA_BROKERS (comma-separated).
func initializeKafka() *kafka.Producer {
	brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if brokers == "" {
		log.Println("Kafka not configured; analysis events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers: strings.Split(brokers, ","),
		Topic:   os.Getenv("KAFKA_TOPIC"),
	})
	if err != nil {
		log.Printf("Warning: failed to init Kafka producer: %v (events disabled)", err)
		return nil
	}
	return producer
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%d", h)
	}
	return strings.Join(parts, ",")
}
