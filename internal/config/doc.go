// Package config handles configuration loading for starship-api.
//
// # Configuration File
//
// Configuration is YAML with environment variable expansion:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//	database:
//	  path: "/var/lib/starship-api/starships.db"
//	jwt:
//	  key: "${STARSHIP_JWT_KEY}"
//	  issuer: "starship-api"
//	  audience: "starship-ui"
//	  expire: "60m"
//	openai:
//	  key: "${OPENAI_API_KEY}"
//	  model: "gpt-4o-mini"
//	swapi:
//	  url: "https://swapi.info"
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// Syntax for expansion is ${VAR_NAME}; unset variables expand to the
// empty string. Durations use Go's time.ParseDuration syntax.
//
// # Validation
//
// Load() validates:
//
//   - server.http_addr and database.path are present
//   - jwt.key is present and at least 32 bytes
//   - jwt.issuer and jwt.audience are present
//
// A weak or missing signing key is a startup failure, never a warning.
package config
