package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Snapshot is the configuration the content pipeline consumes. It is built
// once at startup and injected into services, so the core never reads a
// global registry at request time.
type Snapshot struct {
	DefaultPageSize int
	MaxPageSize     int

	// Guest list cache TTL. Short on purpose: TTL expiry is the primary
	// consistency mechanism, tag invalidation is best effort.
	GuestCacheTTL time.Duration
	// Expander cache TTL, tagged "configs".
	ExpanderCacheTTL time.Duration

	// Default nearby radius per unit and the default unit.
	NearbyLengthKm    float64
	NearbyLengthMi    float64
	DefaultLengthUnit string

	// Content older than this many months is hidden from expired accounts.
	// Zero means unlimited.
	ContentRetentionMonths int

	// Whether profile (per-user) post listings are allowed.
	ProfilePostsEnabled bool

	// External provider fskeys per endpoint. A non-empty value routes the
	// whole request to the named provider and bypasses the local pipeline.
	PostListService      string
	PostDetailService    string
	PostNearbyService    string
	PostTimelinesService string

	// Base URL used to reach external providers.
	ProviderBaseURL string

	JWTSecret string
}

func Load() *Snapshot {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	if os.Getenv("DB_DSN") == "" {
		Logger.Fatal("DB_DSN is not set")
	}
	if os.Getenv("REDIS_ADDR") == "" {
		Logger.Fatal("REDIS_ADDR is not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		Logger.Fatal("JWT_SECRET is not set")
	}

	return &Snapshot{
		DefaultPageSize:        envInt("PAGE_SIZE_DEFAULT", 15),
		MaxPageSize:            envInt("PAGE_SIZE_MAX", 50),
		GuestCacheTTL:          time.Duration(envInt("GUEST_CACHE_TTL_SECONDS", 5)) * time.Second,
		ExpanderCacheTTL:       time.Duration(envInt("EXPANDER_CACHE_TTL_SECONDS", 60)) * time.Second,
		NearbyLengthKm:         envFloat("NEARBY_LENGTH_KM", 5),
		NearbyLengthMi:         envFloat("NEARBY_LENGTH_MI", 3),
		DefaultLengthUnit:      envString("DEFAULT_LENGTH_UNIT", "km"),
		ContentRetentionMonths: envInt("CONTENT_RETENTION_MONTHS", 0),
		ProfilePostsEnabled:    envBool("PROFILE_POSTS_ENABLED", true),
		PostListService:        os.Getenv("POST_LIST_SERVICE"),
		PostDetailService:      os.Getenv("POST_DETAIL_SERVICE"),
		PostNearbyService:      os.Getenv("POST_NEARBY_SERVICE"),
		PostTimelinesService:   os.Getenv("POST_TIMELINES_SERVICE"),
		ProviderBaseURL:        os.Getenv("PROVIDER_BASE_URL"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
