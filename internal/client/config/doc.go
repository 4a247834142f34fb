// Package config loads runtime configuration for the moviecat CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if any, and MOVIECAT_*
//     environment variables (MOVIECAT_API_BASE_URL, MOVIECAT_REQUEST_TIMEOUT,
//     MOVIECAT_DATA_DIR, MOVIECAT_DB_FILE, MOVIECAT_LOG_LEVEL,
//     MOVIECAT_LOG_FORMAT, MOVIECAT_TRUST_CACHED_IDENTITY,
//     MOVIECAT_ONLINE_CHECK_INTERVAL).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the movie service
//	-t int      request timeout (seconds)
//	-d string   data directory
//	-l string   log level
//	-i int      online status check interval (seconds)
//	-trust      trust the cached identity at startup
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://movieapp-api-lms1.onrender.com",
//	  "request_timeout": "10s",
//	  "data_dir": "data",
//	  "db_file": "session.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "trust_cached_identity": true,
//	  "online_check_interval": "30s"
//	}
package config
