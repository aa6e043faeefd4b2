package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	AppAddr       = ":8080"
	AppURL        = "http://localhost:8080"
	SiteTitle     = "SnapCampaign Blog"
	SessionSecret = "change-me"

	// Content settings
	ContentPath  = "" // empty uses the bundled articles
	MediaBaseURL = ""

	// Static map settings
	MapBaseURL     = "https://maps.googleapis.com/maps/api/staticmap"
	MapAPIKey      = ""
	MapType        = "roadmap"
	MapMarkerColor = "red"
	MapZoom        = 14
	MapSize        = "600x300"

	// Feed settings
	FeedType = "rss"

	// Subscribe settings
	SubscribeRPS        = 1.0
	SubscribeBurst      = 5
	KafkaBroker         = ""
	KafkaSubscribeTopic = "newsletter-subscriptions"

	// Proxies whose X-Forwarded-For is believed. Empty trusts none, so the
	// client IP is the connection's remote address.
	TrustedProxies []string

	LogLevel = "info"
)

// Init loads envFile (or .env when empty) and overrides the defaults above
// from the environment.
func Init(envFile string) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		logrus.WithField("file", envFile).Debug("No env file found or error loading it")
	}

	AppAddr = getEnv("APP_ADDR", AppAddr)
	AppURL = getEnv("APP_URL", AppURL)
	SiteTitle = getEnv("SITE_TITLE", SiteTitle)
	SessionSecret = getEnv("SESSION_SECRET", SessionSecret)

	ContentPath = getEnv("CONTENT_PATH", ContentPath)
	MediaBaseURL = getEnv("MEDIA_BASE_URL", MediaBaseURL)

	MapBaseURL = getEnv("MAP_BASE_URL", MapBaseURL)
	MapAPIKey = getEnv("MAP_API_KEY", MapAPIKey)
	MapType = getEnv("MAP_TYPE", MapType)
	MapMarkerColor = getEnv("MAP_MARKER_COLOR", MapMarkerColor)
	MapSize = getEnv("MAP_SIZE", MapSize)
	MapZoom = getEnvInt("MAP_ZOOM", MapZoom)

	FeedType = getEnv("FEED_TYPE", FeedType)

	SubscribeBurst = getEnvInt("SUBSCRIBE_BURST", SubscribeBurst)
	if v := os.Getenv("SUBSCRIBE_RPS"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 {
			SubscribeRPS = val
		}
	}
	KafkaBroker = getEnv("KAFKA_BROKER", KafkaBroker)
	KafkaSubscribeTopic = getEnv("KAFKA_SUBSCRIBE_TOPIC", KafkaSubscribeTopic)
	TrustedProxies = getEnvList("TRUSTED_PROXIES", TrustedProxies)

	LogLevel = getEnv("LOG_LEVEL", LogLevel)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

// getEnvList reads a comma-separated list, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var list []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
