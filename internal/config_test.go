package internal

import (
	"os"
	"path/filepath"
	"testing"

	pkgconfig "github.com/starford/laguz/pkg/config"
)

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Tags = []string{"daily"}
	cfg.OSS.Endpoint = "oss-cn-hangzhou.aliyuncs.com"
	cfg.OSS.Bucket = "blog-assets"
	return cfg
}

func TestConfig_ValidPasses(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config should pass: %v", err)
	}
}

func TestConfig_TagsRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Tags = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty tags should fail validation")
	}
}

func TestConfig_OSSRequired(t *testing.T) {
	cfg := validConfig()
	cfg.OSS.Bucket = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing bucket should fail validation")
	}
}

func TestConfig_OutputDirRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.OutputDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing output_dir should fail validation")
	}
}

func TestConfig_LimitCeiling(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.Limit = 500
	if err := cfg.Validate(); err == nil {
		t.Fatal("limit above server ceiling should fail validation")
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Sync.DaysToSync != 30 {
		t.Errorf("DaysToSync = %d, want 30", cfg.Sync.DaysToSync)
	}
	if cfg.Sync.Limit != 200 {
		t.Errorf("Limit = %d, want 200", cfg.Sync.Limit)
	}
	if cfg.OSS.Prefix != "flomo/" {
		t.Errorf("Prefix = %q", cfg.OSS.Prefix)
	}
}

func TestConfig_LoadYAMLWithEnvExpansion(t *testing.T) {
	t.Setenv("TEST_BUCKET", "expanded-bucket")
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
app:
  log_level: DEBUG
tags:
  - daily
  - reading
oss:
  endpoint: oss.example.com
  bucket: ${TEST_BUCKET}
  prefix: flomo/
sync:
  output_dir: ./posts
  days_to_sync: 7
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OSS.Bucket != "expanded-bucket" {
		t.Errorf("bucket = %q, want env-expanded value", cfg.OSS.Bucket)
	}
	if len(cfg.Tags) != 2 || cfg.Tags[0] != "daily" {
		t.Errorf("tags = %v", cfg.Tags)
	}
	if cfg.Sync.DaysToSync != 7 {
		t.Errorf("days_to_sync = %d, want 7", cfg.Sync.DaysToSync)
	}
	if cfg.Sync.Limit != 200 {
		t.Errorf("limit = %d, want default kept", cfg.Sync.Limit)
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv(EnvToken, "tok")
	t.Setenv(EnvAccessKeyID, "id")
	t.Setenv(EnvAccessKeySecret, "secret")

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if creds.Token != "tok" || creds.AccessKeyID != "id" || creds.AccessKeySecret != "secret" {
		t.Errorf("creds = %+v", creds)
	}
}

func TestLoadCredentials_MissingToken(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvAccessKeyID, "id")
	t.Setenv(EnvAccessKeySecret, "secret")
	if _, err := LoadCredentials(); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestLoadCredentials_MissingStorageKeys(t *testing.T) {
	t.Setenv(EnvToken, "tok")
	t.Setenv(EnvAccessKeyID, "")
	t.Setenv(EnvAccessKeySecret, "")
	if _, err := LoadCredentials(); err == nil {
		t.Fatal("expected error for missing storage keys")
	}
}
