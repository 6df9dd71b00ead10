// Package config loads runtime configuration for the docdesk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed DOCDESK_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   server base URL, e.g. http://127.0.0.1:8000
//	-p string   API prefix on the server (default /api/v1)
//	-s string   path of the local state file
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds, 0 disables)
//	-l string   log level: debug, info, warn, error
//	-d          dump HTTP traffic to the debug log
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "api_prefix": "/api/v1",
//	  "state_path": "docdesk.db",
//	  "request_timeout": "30s",
//	  "online_check_interval": "10s",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "debug": false
//	}
//
// # Environment
//
// DOCDESK_SERVER_URL, DOCDESK_API_PREFIX, DOCDESK_STATE_PATH,
// DOCDESK_REQUEST_TIMEOUT, DOCDESK_ONLINE_CHECK_INTERVAL, DOCDESK_LOG_LEVEL,
// DOCDESK_LOG_FORMAT and DOCDESK_DEBUG, parsed with envconfig. As with any
// envconfig tag, the unprefixed name (e.g. DEBUG) is read when the prefixed
// one is unset.
package config
