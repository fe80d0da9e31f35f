package config

import (
	"flag"
	"os"
	"time"

	"github.com/tigerroots/collective/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-m int      thumbnail max dimension, pixels
//	-q int      thumbnail JPEG quality
//	-v int      thumbnail URL validity, hours
//	-k string   stats cron spec
//	-z string   stats timezone
//
// Args are first filtered with flagx.FilterArgs so flags owned by other
// components do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-u", "-p", "-b", "-g", "-e", "-m", "-q", "-v", "-k", "-z"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.IntVar(&config.ThumbMaxDim, "m", config.ThumbMaxDim, "thumbnail max dimension (px)")
	fs.IntVar(&config.ThumbJPEGQuality, "q", config.ThumbJPEGQuality, "thumbnail JPEG quality")
	thumbURLValidity := fs.Int("v", int(config.ThumbURLValidity.Hours()), "thumbnail URL validity (in hours)")

	fs.StringVar(&config.StatsCronSpec, "k", config.StatsCronSpec, "stats cron spec")
	fs.StringVar(&config.StatsTimezone, "z", config.StatsTimezone, "stats timezone")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ThumbURLValidity = time.Duration(*thumbURLValidity) * time.Hour
}
