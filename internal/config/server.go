package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Port returns the HTTP listen port.
func Port() string {
	return GetEnv("PORT", "8080")
}

// ServerReadTimeout returns the maximum duration for reading the entire request, including the body.
func ServerReadTimeout() time.Duration {
	return MustParseDuration("SERVER_READ_TIMEOUT", "30s")
}

// ServerReadHeaderTimeout returns the amount of time allowed to read request headers.
func ServerReadHeaderTimeout() time.Duration {
	return MustParseDuration("SERVER_READ_HEADER_TIMEOUT", "5s")
}

// ServerWriteTimeout returns the maximum duration before timing out writes of the response.
func ServerWriteTimeout() time.Duration {
	return MustParseDuration("SERVER_WRITE_TIMEOUT", "30s")
}

// ServerIdleTimeout returns the maximum amount of time to wait for the next request when keep-alives are enabled.
func ServerIdleTimeout() time.Duration {
	return MustParseDuration("SERVER_IDLE_TIMEOUT", "60s")
}

// MaxRequestBodyBytes bounds a whole request body, both CNI images included.
// Supports raw integers (bytes) or human-friendly values like "12MB", "512KB".
func MaxRequestBodyBytes() int64 {
	return bytesEnv("MAX_REQUEST_BODY_BYTES", "12MB", 12<<20)
}

// MaxUploadBytes is the inclusive size limit for a single identity-document image.
func MaxUploadBytes() int64 {
	return bytesEnv("MAX_UPLOAD_BYTES", "5MB", 5<<20)
}

// EncodeWorkerCount controls the number of image encoding workers.
func EncodeWorkerCount() int {
	return parseIntEnv("ENCODE_WORKER_COUNT", 4)
}

// SubmitWorkerCount controls the number of submission workers.
func SubmitWorkerCount() int {
	return parseIntEnv("SUBMIT_WORKER_COUNT", 4)
}

// WorkerQueueSize controls the queue size for each worker pool.
func WorkerQueueSize() int {
	return parseIntEnv("WORKER_QUEUE_SIZE", 256)
}

func bytesEnv(key, fallback string, def int64) int64 {
	n, err := parseBytes(GetEnv(key, fallback))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func parseFloatEnv(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func parseBytes(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	// If plain number, treat as bytes
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	mult := int64(1)
	switch {
	case strings.HasSuffix(s, "KB"):
		mult = 1 << 10
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "MB"):
		mult = 1 << 20
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "GB"):
		mult = 1 << 30
		s = strings.TrimSuffix(s, "GB")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int64(n * float64(mult)), nil
}
