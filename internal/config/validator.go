package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists all environment variables that must be set
var RequiredEnvVars = []string{
	"API_KEY",
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version, when declared, matches expectations.
// ENV_SCHEMA_VERSION is optional so the app still starts without a .env file.
func ValidateEnv() error {
	if v := os.Getenv("ENV_SCHEMA_VERSION"); v != "" && v != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if os.Getenv("SYNC_URL") != "" && os.Getenv("SYNC_TOKEN") == "" {
		warnings = append(warnings, "SYNC_URL is set but SYNC_TOKEN is empty - multiplayer sync will stay disconnected")
	}

	if os.Getenv("DB_PATH") == "" {
		warnings = append(warnings, "DB_PATH not set - saves go to ./gardenbloom.db")
	}

	return warnings, nil
}
