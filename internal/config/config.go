package config

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/abhisek/gopherlings/internal/catalog"
	"github.com/abhisek/gopherlings/internal/progress"
)

// Environment variables consulted when a flag is not set.
const (
	EnvInfo    = "GOPHERLINGS_INFO"
	EnvState   = "GOPHERLINGS_STATE"
	EnvStateDB = "GOPHERLINGS_STATE_DB"
	EnvGo      = "GOPHERLINGS_GO"
)

// Config holds the resolved settings for one invocation.
type Config struct {
	InfoFile  string // Curriculum catalog
	StateFile string // Plain text progress file
	StateDB   string // SQLite database; replaces StateFile when set
	GoBin     string
	Verbose   bool

	// UseDB selects the SQLite backend at its default location when StateDB
	// is empty.
	UseDB bool
}

// Flags carries values given on the command line. Empty strings mean unset.
type Flags struct {
	InfoFile  string
	StateFile string
	StateDB   string
	GoBin     string
	Verbose   bool
	UseDB     bool
}

// Resolve applies flags, then environment variables, then defaults.
func Resolve(f Flags) Config {
	return Config{
		InfoFile:  firstNonEmpty(f.InfoFile, os.Getenv(EnvInfo), catalog.DefaultFile),
		StateFile: firstNonEmpty(f.StateFile, os.Getenv(EnvState), progress.DefaultStateFile),
		StateDB:   firstNonEmpty(f.StateDB, os.Getenv(EnvStateDB)),
		GoBin:     firstNonEmpty(f.GoBin, os.Getenv(EnvGo), "go"),
		Verbose:   f.Verbose,
		UseDB:     f.UseDB,
	}
}

// ExerciseRoot is the directory exercise paths are relative to.
func (c Config) ExerciseRoot() string {
	return filepath.Dir(c.InfoFile)
}

// CurriculumKey identifies the curriculum in shared storage. It is derived
// from the absolute catalog path so two checkouts never share progress.
func (c Config) CurriculumKey() string {
	p, err := filepath.Abs(c.InfoFile)
	if err != nil {
		p = c.InfoFile
	}
	sum := sha256.Sum256([]byte(p))
	return hex.EncodeToString(sum[:8])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
