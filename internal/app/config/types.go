package config

type (
	// DriverConfig describes process-lifetime infrastructure connections.
	DriverConfig struct {
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	// InternalConfig parameterizes application behavior. Built once in main
	// and treated as immutable for the life of every request.
	InternalConfig struct {
		App        App
		Booking    Booking
		Calendar   Calendar
		Capability Capability
		Webhook    Webhook
	}

	App struct {
		Env                      string
		Port                     string
		Version                  string
		EndpointPrefix           string
		Timezone                 string
		FrontendDomain           string
		MaxRequests              int
		ShutdownTimeoutInSeconds int
	}

	// Booking holds the scheduling policy. HoursByWeekday is indexed by
	// time.Weekday (Sunday = 0); an empty string means closed that day.
	Booking struct {
		SlotStepMinutes      int
		SlotDurationMinutes  int
		MinimumNoticeMinutes int
		BufferMinutes        int
		HoursByWeekday       [7]string
		Holidays             []string
		TopicTemplate        string
	}

	Calendar struct {
		BaseURL                 string
		TokenURL                string
		AuthMode                string // "oauth" | "jwt"
		AccountID               string
		ClientID                string
		ClientSecret            string
		APIKey                  string
		APISecret               string
		HostUserID              string
		RequestTimeoutInSeconds int
	}

	Capability struct {
		Secret        string
		MaxAgeMinutes int
	}

	Webhook struct {
		NotifyURL            string
		HTTPTimeoutInSeconds int
		MaxAttempts          int
		WorkerCronSpec       string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}

	Logger struct {
		Level string
	}
)
