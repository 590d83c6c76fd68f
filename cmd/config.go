package cmd

import (
	"strconv"
	"strings"
	"time"
)

// Config carries the raw environment configuration. All values come in as
// strings; the typed accessors below parse them and fall back to sane
// defaults on empty or malformed input.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost          string
	KafkaConsumerGroup string

	KafkaAnnouncementPublishedTopic string
	KafkaMatchingResultsTopic       string
	KafkaSubscriptionAttemptsTopic  string
	KafkaCourierLifecycleTopic      string

	ElasticHosts string
	ElasticIndex string

	SMTPHost           string
	SMTPPort           string
	SMTPUser           string
	SMTPPassword       string
	SMTPFrom           string
	CourierEmailDomain string

	PushGatewayURL string

	MatchingMaxRounds string
	MatchingRetryWait string
	RematchMinAge     string
	StreamBufferSize  string
}

// KafkaBrokers splits the comma-separated broker list.
func (c Config) KafkaBrokers() []string {
	if c.KafkaHost == "" {
		return nil
	}

	parts := strings.Split(c.KafkaHost, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}

// ElasticAddresses splits the comma-separated Elasticsearch host list.
func (c Config) ElasticAddresses() []string {
	if c.ElasticHosts == "" {
		return nil
	}

	parts := strings.Split(c.ElasticHosts, ",")
	addresses := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			addresses = append(addresses, trimmed)
		}
	}
	return addresses
}

// SMTPPortNumber parses the SMTP port, defaulting to 587.
func (c Config) SMTPPortNumber() int {
	return parseInt(c.SMTPPort, 587)
}

// MaxSearchRounds parses the matching round cap. Zero means the consumer's
// default applies.
func (c Config) MaxSearchRounds() int {
	return parseInt(c.MatchingMaxRounds, 0)
}

// RetryWaitDuration parses the pause between matching rounds. Zero means the
// consumer's default applies.
func (c Config) RetryWaitDuration() time.Duration {
	return parseDuration(c.MatchingRetryWait, 0)
}

// RematchMinAgeDuration parses the minimum age before the rematch sweep
// re-enters an announcement. Zero means the job's default applies.
func (c Config) RematchMinAgeDuration() time.Duration {
	return parseDuration(c.RematchMinAge, 0)
}

// StreamBufferSizeNumber parses the per-courier live stream buffer size.
func (c Config) StreamBufferSizeNumber() int {
	return parseInt(c.StreamBufferSize, 16)
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
