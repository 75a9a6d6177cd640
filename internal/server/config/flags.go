package config

import (
	"flag"
	"os"
	"time"

	"postboard/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-i int      password hash iteration count
//	-f string   TLS certificate file
//	-k string   TLS key file
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The duration
// flag is accepted as an integer in minutes and converted to time.Duration.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-i", "-f", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidity.Minutes()), "token validity (in minutes)")
	fs.IntVar(&config.HashIterations, "i", config.HashIterations, "password hash iterations")

	fs.StringVar(&config.CertFile, "f", config.CertFile, "TLS certificate file")
	fs.StringVar(&config.KeyFile, "k", config.KeyFile, "TLS key file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidity = time.Duration(*tokenValidity) * time.Minute
}
