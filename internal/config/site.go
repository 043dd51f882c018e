package config

// SiteURL is the public website shown in the navigation links.
func SiteURL() string {
	return GetEnv("SITE_URL", "https://merute.dev")
}

// SupportURL is the technical support link target.
func SupportURL() string {
	return GetEnv("SUPPORT_URL", "#")
}

// QRPayloadURL is the fixed URL encoded in the login QR code.
func QRPayloadURL() string {
	return GetEnv("QR_PAYLOAD_URL", "https://merute.dev")
}

// AssetsDir is the directory holding pictures/logo.png and pictures/login.webp.
func AssetsDir() string {
	return GetEnv("ASSETS_DIR", "./public")
}

// LogFile is the path of the JSON log file.
func LogFile() string {
	return GetEnv("LOG_FILE", "welcome.log")
}

// CORSAllowedOrigins lists origins allowed to call the JSON API.
func CORSAllowedOrigins() []string {
	return GetList("CORS_ALLOWED_ORIGINS", "https://merute.dev")
}

// APIRateLimit is the sustained number of form and API posts per second per
// client.
func APIRateLimit() float64 {
	return parseFloatEnv("API_RATE_LIMIT", 1)
}

// APIRateBurst is the burst size per client. A full partner application
// takes a handful of posts.
func APIRateBurst() int {
	return parseIntEnv("API_RATE_BURST", 10)
}
