package discord

// Config holds configuration for the Discord client.
type Config struct {
	// APIURL is the REST API base URL.
	APIURL string `mapstructure:"api_url" default:"https://discord.com/api/v10"`
	// BotToken authenticates the bot.
	BotToken string `mapstructure:"bot_token" default:""`
	// BotRoleName names the bot's role in corrective messages.
	BotRoleName string `mapstructure:"bot_role_name" default:"Lunar Assistant"`
	// RequestsPerSecond is the outbound request rate.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"20"`
	// MaxRetries is the number of retries after a 429 or 5xx answer.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// TimeoutSeconds bounds connection setup and the wait for headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
