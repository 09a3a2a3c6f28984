package config

const (
	defaultDataDir        = "~/.local/share/sublint"
	defaultLogDir         = "~/.local/share/sublint/logs"
	defaultBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel          = "google/gemini-3-flash-preview"
	defaultReferer        = "https://github.com/sublint/sublint"
	defaultTitle          = "Sublint LQA"
	defaultTimeoutSeconds = 60
	defaultBatchSize      = 10
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultBaseURL,
			Model:          defaultModel,
			Referer:        defaultReferer,
			Title:          defaultTitle,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Review: Review{
			BatchSize: defaultBatchSize,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
