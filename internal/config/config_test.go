package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "TRANSCODER_ADDR", "DB_FILE_PATH", "NATS_URL",
		"VOICER_BUCKET", "FILES_PREFIX", "CONVERTER_API_URL",
		"GEMINI_BASE_URL", "GEMINI_API_KEY", "REDIS_ADDR",
		"RATE_LIMIT_PER_MINUTE", "RABBIT_URL", "RABBIT_QUEUE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.TranscoderAddr != ":3001" {
		t.Errorf("TranscoderAddr = %q", cfg.TranscoderAddr)
	}
	if cfg.Bucket != "voicer" {
		t.Errorf("Bucket = %q", cfg.Bucket)
	}
	if cfg.FilesPrefix != "generated_files" {
		t.Errorf("FilesPrefix = %q", cfg.FilesPrefix)
	}
	if cfg.ConverterURL != "http://localhost:3001" {
		t.Errorf("ConverterURL = %q", cfg.ConverterURL)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr should default to empty, got %q", cfg.RedisAddr)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("RateLimitPerMinute = %d", cfg.RateLimitPerMinute)
	}
	if cfg.RabbitQueue != "generation_jobs" {
		t.Errorf("RabbitQueue = %q", cfg.RabbitQueue)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("VOICER_BUCKET", "audio-test")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "3")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.Bucket != "audio-test" {
		t.Errorf("Bucket = %q", cfg.Bucket)
	}
	if cfg.GeminiAPIKey != "secret" {
		t.Errorf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.RateLimitPerMinute != 3 {
		t.Errorf("RateLimitPerMinute = %d", cfg.RateLimitPerMinute)
	}
	if cfg.RedisDB != 2 {
		t.Errorf("RedisDB = %d", cfg.RedisDB)
	}
}
