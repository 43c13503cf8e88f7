// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "SA_PORT"
	EnvLogLevel        = "SA_LOG_LEVEL"
	EnvShutdownTimeout = "SA_SHUTDOWN_TIMEOUT"

	// Answer provider (RAG pipeline service)
	EnvRAGBaseURL = "SA_RAG_BASE_URL"
	EnvRAGTimeout = "SA_RAG_TIMEOUT"

	// Knowledge store (Elasticsearch)
	EnvESAddresses = "SA_ES_ADDRESSES"
	EnvESUsername  = "SA_ES_USERNAME"
	EnvESPassword  = "SA_ES_PASSWORD"
	EnvESIndex     = "SA_ES_INDEX"

	// Follow-up generation
	EnvOpenAIAPIKey        = "SA_OPENAI_API_KEY"
	EnvOpenAIAPIKeyCompat  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL       = "SA_OPENAI_BASE_URL"
	EnvFollowupModel       = "SA_FOLLOWUP_MODEL"
	EnvFollowupModelLegacy = "SA_FOLLOWUP_MODEL_LEGACY"
	// Compat spelling used by earlier deployments.
	EnvFollowupModelLegacyCompat = "FOLLOWUP_MODEL_LEGACY"
	EnvUseLLMFollowups           = "SA_USE_LLM_FOLLOWUPS"
	EnvDebugFollowups            = "SA_DEBUG_FOLLOWUPS"
	EnvFollowupCount             = "SA_FOLLOWUP_COUNT"

	// Metrics Auth Feature
	EnvMetricsAuthEnabled = "SA_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "SA_METRICS_USERNAME"
	EnvMetricsPassword    = "SA_METRICS_PASSWORD"

	// Sentry Feature
	EnvSentryEnabled     = "SA_SENTRY_ENABLED"
	EnvSentryToken       = "SA_SENTRY_TOKEN"
	EnvSentryHost        = "SA_SENTRY_HOST"
	EnvSentryEnvironment = "SA_SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "SA_SENTRY_RELEASE"
	EnvSentrySampleRate  = "SA_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "SA_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "SA_BETTERSTACK_ENDPOINT"
)
