package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"attendee.link/configs/configslog"
)

// LoadEnv reads the .env file if present. Missing files are fine in
// production where the environment is injected directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env file not found, relying on process environment")
	}
}

// GetEnv returns the value of key or fallback when unset/empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt returns the integer value of key or fallback when unset/invalid.
func GetEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		configslog.SLog.Warnf("invalid integer for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// BaseURL is the public origin used when building URLs for stored files.
func BaseURL() string {
	return GetEnv("BASE_URL", "http://localhost:3000")
}

// UploadDir is the root directory of the disk-backed blob store.
func UploadDir() string {
	return GetEnv("UPLOAD_DIR", "uploads")
}

// MailCredentialsMode controls which registrants receive the login
// credentials block in the acceptance mail. The traced behaviour gates the
// block on the user having a committee; the opposite reading (credentials go
// to generated attendees, who have no other way to learn their password) is
// selectable with "attendee" until product settles the question.
func MailCredentialsMode() string {
	return GetEnv("MAIL_CREDENTIALS_MODE", "committee")
}
