package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	if c.EndpointAddrHTTP != ":8080" {
		t.Fatalf("EndpointAddrHTTP = %q", c.EndpointAddrHTTP)
	}
	if c.ThumbMaxDim != 400 || c.ThumbJPEGQuality != 70 {
		t.Fatalf("thumbnail defaults = %d/%d, want 400/70", c.ThumbMaxDim, c.ThumbJPEGQuality)
	}
	if c.ThumbURLValidity != 168*time.Hour {
		t.Fatalf("ThumbURLValidity = %v", c.ThumbURLValidity)
	}
	if c.StatsCronSpec != "5 0 * * *" || c.StatsTimezone != "America/New_York" {
		t.Fatalf("stats schedule = %q %q", c.StatsCronSpec, c.StatsTimezone)
	}
}

func TestParseJsonOverlay(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	body := `{
		"endpoint_addr_http": ":9999",
		"database_dsn": "postgres://x",
		"secret_key": "sk",
		"s3_root_user": "root",
		"s3_root_password": "pw",
		"s3_bucket": "pics",
		"s3_region": "eu-west-1",
		"s3_base_endpoint": "http://minio:9000/",
		"thumb_max_dim": 256,
		"thumb_jpeg_quality": 80,
		"thumb_url_validity": "24h",
		"stats_cron_spec": "0 1 * * *",
		"stats_timezone": "UTC"
	}`
	if err := os.WriteFile(file, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"srv", "-c", file}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	if c.EndpointAddrHTTP != ":9999" || c.DatabaseDSN != "postgres://x" {
		t.Fatalf("overlay not applied: %+v", c)
	}
	if c.ThumbMaxDim != 256 || c.ThumbURLValidity != 24*time.Hour {
		t.Fatalf("thumb overlay not applied: %+v", c)
	}
	if c.StatsTimezone != "UTC" {
		t.Fatalf("StatsTimezone = %q", c.StatsTimezone)
	}
}

func TestParseFlagsOverride(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"srv", "-a", ":7070", "-m", "512", "-v", "48"}

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	if c.EndpointAddrHTTP != ":7070" {
		t.Fatalf("EndpointAddrHTTP = %q", c.EndpointAddrHTTP)
	}
	if c.ThumbMaxDim != 512 {
		t.Fatalf("ThumbMaxDim = %d", c.ThumbMaxDim)
	}
	if c.ThumbURLValidity != 48*time.Hour {
		t.Fatalf("ThumbURLValidity = %v", c.ThumbURLValidity)
	}
}
