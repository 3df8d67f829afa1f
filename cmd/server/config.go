package main

import "time"

type Config struct {
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`
	Host           string `env:"HOST,default=0.0.0.0"`
	Port           int    `env:"PORT,default=3000"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LimitMessages  *int   `env:"LIMIT_MESSAGES"`

	OpenAIBaseURL string `env:"OPENAI_BASE_URL,default=https://api.openai.com"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY,required=true"`
	OpenAIModel   string `env:"OPENAI_MODEL,default=gpt-4o-mini"`

	MinQueueWait            time.Duration `env:"AI_MIN_QUEUE_WAIT,default=10s"`
	MaxQueueWait            time.Duration `env:"AI_MAX_QUEUE_WAIT,default=20s"`
	FirstMessageProbability float64       `env:"AI_FIRST_MESSAGE_PROBABILITY,default=0.65"`
	MaxConversationTime     time.Duration `env:"AI_MAX_CONVERSATION_TIME,default=10m"`
	MaxConversationTurns    int           `env:"AI_MAX_CONVERSATION_TURNS,default=50"`

	RestartInterval    time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	QueueSweepInterval time.Duration `env:"QUEUE_SWEEP_INTERVAL,default=5m"`
	StaleSweepInterval time.Duration `env:"STALE_SWEEP_INTERVAL,default=1m"`
	PreemptionInterval time.Duration `env:"PREEMPTION_INTERVAL,default=5s"`
	HeartbeatInterval  time.Duration `env:"HEARTBEAT_INTERVAL,default=5s"`
	RetentionPeriod    time.Duration `env:"RETENTION_PERIOD,default=720h"`
	RetentionInterval  time.Duration `env:"RETENTION_INTERVAL,default=24h"`
}
