package config

import (
	"github.com/JaimeStill/tenderboard/internal/acquisition"
	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/pkg/database"
	"github.com/JaimeStill/tenderboard/pkg/logger"
	"github.com/JaimeStill/tenderboard/pkg/storage"
)

var databaseEnv = &database.Env{
	Host:            "TENDERBOARD_DB_HOST",
	Port:            "TENDERBOARD_DB_PORT",
	Name:            "TENDERBOARD_DB_NAME",
	User:            "TENDERBOARD_DB_USER",
	Password:        "TENDERBOARD_DB_PASSWORD",
	SSLMode:         "TENDERBOARD_DB_SSL_MODE",
	MaxOpenConns:    "TENDERBOARD_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "TENDERBOARD_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "TENDERBOARD_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "TENDERBOARD_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "TENDERBOARD_STORAGE_PROVIDER",
	ContainerName:    "TENDERBOARD_STORAGE_CONTAINER_NAME",
	ConnectionString: "TENDERBOARD_STORAGE_CONNECTION_STRING",
	Endpoint:         "TENDERBOARD_STORAGE_ENDPOINT",
	AccessKey:        "TENDERBOARD_STORAGE_ACCESS_KEY",
	SecretKey:        "TENDERBOARD_STORAGE_SECRET_KEY",
	UseSSL:           "TENDERBOARD_STORAGE_USE_SSL",
	MaxListSize:      "TENDERBOARD_STORAGE_MAX_LIST_SIZE",
}

var logEnv = &logger.Env{
	Level:  "TENDERBOARD_LOG_LEVEL",
	Format: "TENDERBOARD_LOG_FORMAT",
}

var acquisitionEnv = &acquisition.Env{
	Relays:            "TENDERBOARD_ACQUISITION_RELAYS",
	AttemptTimeout:    "TENDERBOARD_ACQUISITION_ATTEMPT_TIMEOUT",
	BatchSize:         "TENDERBOARD_ACQUISITION_BATCH_SIZE",
	SmallPayloadBytes: "TENDERBOARD_ACQUISITION_SMALL_PAYLOAD_BYTES",
	MaxDownloadSize:   "TENDERBOARD_ACQUISITION_MAX_DOWNLOAD_SIZE",
	UserAgent:         "TENDERBOARD_ACQUISITION_USER_AGENT",
}

var analysisEnv = &analysis.Env{
	APIKey:    "TENDERBOARD_ANALYSIS_API_KEY",
	Model:     "TENDERBOARD_ANALYSIS_MODEL",
	MaxTokens: "TENDERBOARD_ANALYSIS_MAX_TOKENS",
	Timeout:   "TENDERBOARD_ANALYSIS_TIMEOUT",
}
