package config

import (
	"flag"
	"os"

	"github.com/HASANPOWER/Spectra-App/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local settings database
//	-p string   remote document store project ID
//	-k string   service-account key file
//	-l string   log level (debug, info, warn, error)
//
// os.Args is filtered through flagx.FilterArgs so flags owned by other
// components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-p", "-k", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path of the local settings database")
	fs.StringVar(&cfg.FirestoreProject, "p", cfg.FirestoreProject, "remote document store project ID")
	fs.StringVar(&cfg.CredentialsFile, "k", cfg.CredentialsFile, "service-account key file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
