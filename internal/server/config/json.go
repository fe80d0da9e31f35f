package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/tigerroots/collective/internal/flagx"
	"github.com/tigerroots/collective/internal/timex"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// Duration fields accept either strings such as "168h" or integer
// nanoseconds; after unmarshalling, values are copied into Config.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	ThumbMaxDim      int            `json:"thumb_max_dim"`
	ThumbJPEGQuality int            `json:"thumb_jpeg_quality"`
	ThumbURLValidity timex.Duration `json:"thumb_url_validity"`
	StatsCronSpec    string         `json:"stats_cron_spec"`
	StatsTimezone    string         `json:"stats_timezone"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flag into the provided Config. When no file is named, nothing
// is loaded. An unreadable or invalid file panics: the server must not start
// on a half-applied configuration.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.ThumbMaxDim = c.ThumbMaxDim
	config.ThumbJPEGQuality = c.ThumbJPEGQuality
	config.ThumbURLValidity = time.Duration(c.ThumbURLValidity.Duration)
	config.StatsCronSpec = c.StatsCronSpec
	config.StatsTimezone = c.StatsTimezone
}
