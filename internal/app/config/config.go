package config

import (
	"strings"

	"eduvoyage-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", ""),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Logger: Logger{
			Level: utils.GetEnvString("LOGGER_LEVEL", "debug"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                      utils.GetEnvString("APP_ENV", "development"),
			Port:                     utils.GetEnvString("APP_PORT", ":8080"),
			Version:                  utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:           utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			Timezone:                 utils.GetEnvString("APP_TIMEZONE", "Asia/Dhaka"),
			FrontendDomain:           utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:3000"),
			MaxRequests:              utils.GetEnvInt("APP_MAX_REQUESTS", 50),
			ShutdownTimeoutInSeconds: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
		},
		Booking: Booking{
			SlotStepMinutes:      utils.GetEnvInt("BOOKING_SLOT_STEP_MINUTES", 15),
			SlotDurationMinutes:  utils.GetEnvInt("BOOKING_SLOT_DURATION_MINUTES", 15),
			MinimumNoticeMinutes: utils.GetEnvInt("BOOKING_MINIMUM_NOTICE_MINUTES", 120),
			BufferMinutes:        utils.GetEnvInt("BOOKING_BUFFER_MINUTES", 10),
			HoursByWeekday: [7]string{
				utils.GetEnvString("BOOKING_HOURS_SUNDAY", ""),
				utils.GetEnvString("BOOKING_HOURS_MONDAY", "09:00-18:00"),
				utils.GetEnvString("BOOKING_HOURS_TUESDAY", "09:00-18:00"),
				utils.GetEnvString("BOOKING_HOURS_WEDNESDAY", "09:00-18:00"),
				utils.GetEnvString("BOOKING_HOURS_THURSDAY", "09:00-18:00"),
				utils.GetEnvString("BOOKING_HOURS_FRIDAY", "09:00-18:00"),
				utils.GetEnvString("BOOKING_HOURS_SATURDAY", "09:00-13:00"),
			},
			Holidays:      splitCSV(utils.GetEnvString("BOOKING_HOLIDAYS", "")),
			TopicTemplate: utils.GetEnvString("BOOKING_TOPIC_TEMPLATE", "Study Abroad Consultation with %s"),
		},
		Calendar: Calendar{
			BaseURL:                 utils.GetEnvString("CALENDAR_BASE_URL", "https://api.zoom.us/v2"),
			TokenURL:                utils.GetEnvString("CALENDAR_TOKEN_URL", "https://zoom.us/oauth/token"),
			AuthMode:                utils.GetEnvString("CALENDAR_AUTH_MODE", "oauth"),
			AccountID:               utils.GetEnvString("CALENDAR_ACCOUNT_ID", ""),
			ClientID:                utils.GetEnvString("CALENDAR_CLIENT_ID", ""),
			ClientSecret:            utils.GetEnvString("CALENDAR_CLIENT_SECRET", ""),
			APIKey:                  utils.GetEnvString("CALENDAR_API_KEY", ""),
			APISecret:               utils.GetEnvString("CALENDAR_API_SECRET", ""),
			HostUserID:              utils.GetEnvString("CALENDAR_HOST_USER_ID", "me"),
			RequestTimeoutInSeconds: utils.GetEnvInt("CALENDAR_REQUEST_TIMEOUT_IN_SECONDS", 10),
		},
		Capability: Capability{
			Secret:        utils.GetEnvString("CAPABILITY_SECRET", ""),
			MaxAgeMinutes: utils.GetEnvInt("CAPABILITY_MAX_AGE_MINUTES", 0),
		},
		Webhook: Webhook{
			NotifyURL:            utils.GetEnvString("WEBHOOK_NOTIFY_URL", ""),
			HTTPTimeoutInSeconds: utils.GetEnvInt("WEBHOOK_HTTP_TIMEOUT_IN_SECONDS", 10),
			MaxAttempts:          utils.GetEnvInt("WEBHOOK_MAX_ATTEMPTS", 5),
			WorkerCronSpec:       utils.GetEnvString("WEBHOOK_WORKER_CRON_SPEC", "@every 1m"),
		},
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
