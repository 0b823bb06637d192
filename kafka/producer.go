package kafka

import (
	"encoding/json"
	"log"

	"github.com/IBM/sarama"

	"newswatch/types"
)

// DefaultTopic receives one event per completed fact-check analysis.
const DefaultTopic = "newswatch.analyses"

// Producer publishes analysis events for downstream consumers (dashboards,
// alerting, long-term indexing). It is optional; the pipeline runs without it.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// ProducerConfig holds Kafka producer configuration.
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// NewProducer creates a synchronous Kafka producer.
func NewProducer(config ProducerConfig) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	client, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, err
	}

	topic := config.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	log.Printf("✅ Kafka producer started (topic: %s)", topic)
	return &Producer{producer: client, topic: topic}, nil
}

// AnalysisEvent is the wire shape published per completed analysis.
type AnalysisEvent struct {
	ArticleURL        string  `json:"articleUrl"`
	ArticleTitle      string  `json:"articleTitle"`
	Source            string  `json:"source"`
	OverallAssessment string  `json:"overallAssessment"`
	CredibilityScore  float64 `json:"credibilityScore"`
	FinalScore        float64 `json:"finalScore"`
	SocialStatus      string  `json:"socialStatus"`
	ProcessedAt       string  `json:"processedAt"`
}

// PublishAnalysis emits one event keyed by article URL.
func (p *Producer) PublishAnalysis(result *types.Result) error {
	event := AnalysisEvent{
		ArticleURL:        result.Article.URL,
		ArticleTitle:      result.Article.Title,
		Source:            result.Article.SourceName,
		OverallAssessment: result.Analysis.OverallAssessment,
		CredibilityScore:  result.Analysis.CredibilityScore,
		FinalScore:        result.Analysis.FinalScore,
		SocialStatus:      result.Analysis.SocialMedia.Status,
		ProcessedAt:       result.Analysis.ProcessedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(result.Article.URL),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.Printf("❌ Failed to publish analysis event: %v", err)
		return err
	}

	log.Printf("📤 Published analysis event: partition=%d, offset=%d", partition, offset)
	return nil
}

// Close gracefully shuts down the producer.
func (p *Producer) Close() error {
	log.Println("Closing Kafka producer...")
	return p.producer.Close()
}
