package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"sanctuary/version"
)

// Config holds Sanctuary runtime configuration.
type Config struct {
	LogLevel    string
	LogFilePath string
	Port        int
	DatabaseURL string
	Production  bool

	// Admin credential (single shared secret). AdminPassword may be either a
	// plaintext value or a bcrypt hash ($2a$/$2b$/$2y$ prefix).
	AdminUsername string
	AdminPassword string

	// Completion endpoint (OpenAI-compatible)
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIModel        string
	ChatTemperature    float64
	ChatMaxTokens      int
	ChatHistoryLimit   int
	ChatTimeoutSeconds int

	// File uploads
	UploadDir   string
	UploadMaxMB int

	// SQLite tuning
	SQLitePragmasEnabled bool
	SQLiteBusyTimeoutMS  int
	SQLiteJournalMode    string
	SQLiteSynchronous    string
	SQLiteForeignKeys    bool
	SQLiteMaxOpenConns   int
	SQLiteMaxIdleConns   int
	SQLiteConnMaxIdleSec int
	SQLiteConnMaxLifeSec int

	// CLI mode
	CLIMode   bool
	CLIServer string

	// Tunables
	AnnouncementHistoryLimit        int
	GoroutineMonitorIntervalSeconds int
	GoroutineWarnThreshold          int
}

// Settings is the global configuration instance populated from environment variables and flags.
var Settings *Config

func init() {
	Settings = &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFilePath: getEnv("LOG_FILE", "./sanctuary.log"),
		Port:        getEnvInt("PORT", 8080),
		DatabaseURL: getEnv("DATABASE_URL", "sanctuary.db"),
		Production:  getEnv("APP_ENV", "development") == "production",

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ChatTemperature:    getEnvFloat("CHAT_TEMPERATURE", 0.7),
		ChatMaxTokens:      getEnvInt("CHAT_MAX_TOKENS", 512),
		ChatHistoryLimit:   getEnvInt("CHAT_HISTORY_LIMIT", 20),
		ChatTimeoutSeconds: getEnvInt("CHAT_TIMEOUT_SECONDS", 60),

		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		UploadMaxMB: getEnvInt("UPLOAD_MAX_MB", 20),

		SQLitePragmasEnabled: getEnvBool("SQLITE_PRAGMAS_ENABLED", true),
		SQLiteBusyTimeoutMS:  getEnvInt("SQLITE_BUSY_TIMEOUT_MS", 5000),
		SQLiteJournalMode:    getEnv("SQLITE_JOURNAL_MODE", "WAL"),
		SQLiteSynchronous:    getEnv("SQLITE_SYNCHRONOUS", "NORMAL"),
		SQLiteForeignKeys:    getEnvBool("SQLITE_FOREIGN_KEYS", true),
		SQLiteMaxOpenConns:   getEnvInt("SQLITE_MAX_OPEN_CONNS", 1),
		SQLiteMaxIdleConns:   getEnvInt("SQLITE_MAX_IDLE_CONNS", 1),
		SQLiteConnMaxIdleSec: getEnvInt("SQLITE_CONN_MAX_IDLE_SECONDS", 300),
		SQLiteConnMaxLifeSec: getEnvInt("SQLITE_CONN_MAX_LIFETIME_SECONDS", 0),

		CLIMode: getEnvBool("CLI_MODE", false),

		AnnouncementHistoryLimit:        getEnvInt("ANNOUNCEMENT_HISTORY_LIMIT", 20),
		GoroutineMonitorIntervalSeconds: getEnvInt("GOROUTINE_MONITOR_INTERVAL_SECONDS", 30),
		GoroutineWarnThreshold:          getEnvInt("GOROUTINE_WARN_THRESHOLD", 1000),
	}
}

// ParseFlags parses command-line flags, applies any overrides to the package-level Settings,
// and handles --help (prints usage and exits) and --version (prints build info and exits).
func ParseFlags() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Sanctuary - personal digital sanctuary backend\n\n")
		fmt.Fprintf(out, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintln(out, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(out, "\nEnvironment variables:")
		fmt.Fprintln(out, "  LOG_LEVEL                         Log level (DEBUG, INFO, WARN, ERROR)")
		fmt.Fprintln(out, "  LOG_FILE                          Log file path (default ./sanctuary.log)")
		fmt.Fprintln(out, "  PORT                              HTTP server port (default 8080)")
		fmt.Fprintln(out, "  DATABASE_URL                      SQLite database path (default sanctuary.db)")
		fmt.Fprintln(out, "  APP_ENV                           production enables the Secure cookie flag")
		fmt.Fprintln(out, "  ADMIN_USERNAME                    Admin login name (default admin)")
		fmt.Fprintln(out, "  ADMIN_PASSWORD                    Admin password, plaintext or bcrypt hash")
		fmt.Fprintln(out, "  OPENAI_API_KEY                    Completion endpoint API key")
		fmt.Fprintln(out, "  OPENAI_BASE_URL                   Completion endpoint base URL (default https://api.openai.com/v1)")
		fmt.Fprintln(out, "  OPENAI_MODEL                      Completion model name (default gpt-4o-mini)")
		fmt.Fprintln(out, "  CHAT_TEMPERATURE                  Completion temperature (default 0.7)")
		fmt.Fprintln(out, "  CHAT_MAX_TOKENS                   Reply token ceiling (default 512)")
		fmt.Fprintln(out, "  CHAT_HISTORY_LIMIT                Max prior turns sent per reply (default 20)")
		fmt.Fprintln(out, "  CHAT_TIMEOUT_SECONDS              Per-reply completion timeout (default 60)")
		fmt.Fprintln(out, "  UPLOAD_DIR                        Upload directory (default ./uploads)")
		fmt.Fprintln(out, "  UPLOAD_MAX_MB                     Max multipart upload size in MB (default 20)")
		fmt.Fprintln(out, "  SQLITE_PRAGMAS_ENABLED            Enable SQLite PRAGMAs (true/false, default true)")
		fmt.Fprintln(out, "  SQLITE_BUSY_TIMEOUT_MS            SQLite busy_timeout in milliseconds (default 5000)")
		fmt.Fprintln(out, "  SQLITE_JOURNAL_MODE               SQLite journal_mode (default WAL)")
		fmt.Fprintln(out, "  SQLITE_SYNCHRONOUS                SQLite synchronous (default NORMAL)")
		fmt.Fprintln(out, "  SQLITE_FOREIGN_KEYS               Enable SQLite foreign_keys (true/false, default true)")
		fmt.Fprintln(out, "  SQLITE_MAX_OPEN_CONNS             SQLite MaxOpenConns (default 1)")
		fmt.Fprintln(out, "  SQLITE_MAX_IDLE_CONNS             SQLite MaxIdleConns (default 1)")
		fmt.Fprintln(out, "  SQLITE_CONN_MAX_IDLE_SECONDS      SQLite ConnMaxIdleTime in seconds (default 300)")
		fmt.Fprintln(out, "  SQLITE_CONN_MAX_LIFETIME_SECONDS  SQLite ConnMaxLifetime in seconds (default 0)")
		fmt.Fprintln(out, "  ANNOUNCEMENT_HISTORY_LIMIT        Announcement history window (default 20)")
		fmt.Fprintln(out, "  GOROUTINE_MONITOR_INTERVAL_SECONDS Interval seconds for goroutine monitor (default 30)")
		fmt.Fprintln(out, "  GOROUTINE_WARN_THRESHOLD          Goroutine count warning threshold (default 1000)")
	}

	port := flag.Int("port", Settings.Port, "HTTP server port (overrides PORT)")
	db := flag.String("db", Settings.DatabaseURL, "SQLite database path (overrides DATABASE_URL)")
	logLevel := flag.String("log-level", Settings.LogLevel, "Log level: DEBUG, INFO, WARN, ERROR (overrides LOG_LEVEL)")
	logFile := flag.String("log-file", Settings.LogFilePath, "Log file path (overrides LOG_FILE)")
	uploadDir := flag.String("upload-dir", Settings.UploadDir, "Upload directory (overrides UPLOAD_DIR)")
	sqlitePragmasEnabled := flag.Bool("sqlite-pragmas", Settings.SQLitePragmasEnabled, "Enable SQLite PRAGMAs (overrides SQLITE_PRAGMAS_ENABLED)")
	sqliteBusyTimeoutMS := flag.Int("sqlite-busy-timeout-ms", Settings.SQLiteBusyTimeoutMS, "SQLite busy_timeout in milliseconds (overrides SQLITE_BUSY_TIMEOUT_MS)")
	sqliteJournalMode := flag.String("sqlite-journal-mode", Settings.SQLiteJournalMode, "SQLite journal_mode (overrides SQLITE_JOURNAL_MODE)")
	sqliteSynchronous := flag.String("sqlite-synchronous", Settings.SQLiteSynchronous, "SQLite synchronous (overrides SQLITE_SYNCHRONOUS)")
	sqliteForeignKeys := flag.Bool("sqlite-foreign-keys", Settings.SQLiteForeignKeys, "Enable SQLite foreign_keys PRAGMA (overrides SQLITE_FOREIGN_KEYS)")
	sqliteMaxOpenConns := flag.Int("sqlite-max-open-conns", Settings.SQLiteMaxOpenConns, "SQLite MaxOpenConns (overrides SQLITE_MAX_OPEN_CONNS)")
	sqliteMaxIdleConns := flag.Int("sqlite-max-idle-conns", Settings.SQLiteMaxIdleConns, "SQLite MaxIdleConns (overrides SQLITE_MAX_IDLE_CONNS)")
	cliMode := flag.Bool("cli", Settings.CLIMode, "Run in CLI mode (HTTP client only, no database)")
	cliServer := flag.String("server", "http://localhost:8080", "Server URL for CLI mode")

	showHelp := flag.Bool("help", false, "Show help and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetBuildInfo())
		os.Exit(0)
	}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	Settings.Port = *port
	Settings.DatabaseURL = *db
	Settings.LogLevel = *logLevel
	Settings.LogFilePath = *logFile
	Settings.UploadDir = *uploadDir
	Settings.SQLitePragmasEnabled = *sqlitePragmasEnabled
	Settings.SQLiteBusyTimeoutMS = *sqliteBusyTimeoutMS
	Settings.SQLiteJournalMode = *sqliteJournalMode
	Settings.SQLiteSynchronous = *sqliteSynchronous
	Settings.SQLiteForeignKeys = *sqliteForeignKeys
	Settings.SQLiteMaxOpenConns = *sqliteMaxOpenConns
	Settings.SQLiteMaxIdleConns = *sqliteMaxIdleConns
	Settings.CLIMode = *cliMode
	Settings.CLIServer = *cliServer
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
