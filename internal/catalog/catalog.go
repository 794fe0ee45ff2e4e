package catalog

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/gopherlings/internal/exercise"
)

// DefaultFile is the catalog file name used when none is configured.
const DefaultFile = "info.yaml"

// supportedMajor is the catalog format major version this build understands.
const supportedMajor = "v1"

// ExercisesDir is the root directory of exercise packages.
const ExercisesDir = "exercises"

var ErrUnsupportedFormat = errors.New("unsupported catalog format version")

// Info is a parsed curriculum catalog.
type Info struct {
	FormatVersion  string         `yaml:"format_version"`
	WelcomeMessage string         `yaml:"welcome_message"`
	FinalMessage   string         `yaml:"final_message"`
	Exercises      []ExerciseInfo `yaml:"exercises"`
}

// ExerciseInfo is one exercise entry in the catalog.
type ExerciseInfo struct {
	Name string        `yaml:"name"`
	Dir  string        `yaml:"dir"`
	Mode exercise.Mode `yaml:"mode"`
	Hint string        `yaml:"hint"`
}

// Path returns the exercise's package directory relative to the catalog.
func (e ExerciseInfo) Path() string {
	if e.Dir == "" {
		return path.Join(ExercisesDir, e.Name)
	}
	return path.Join(ExercisesDir, e.Dir, e.Name)
}

// Load reads and validates the catalog at filename.
func Load(filename string) (*Info, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Info, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := checkFormatVersion(info.FormatVersion); err != nil {
		return nil, err
	}
	if err := validateExercises(info.Exercises); err != nil {
		return nil, err
	}
	return &info, nil
}

// checkFormatVersion accepts "1", "1.2" or "v1.2.3" style versions with a
// supported major version.
func checkFormatVersion(v string) error {
	canonical := v
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedFormat, v)
	}
	if major := semver.Major(canonical); major != supportedMajor {
		return fmt.Errorf("%w: %s (this build reads %s)", ErrUnsupportedFormat, major, supportedMajor)
	}
	return nil
}

// Descriptors returns registry descriptors in catalog order.
func (i *Info) Descriptors() []exercise.Descriptor {
	descs := make([]exercise.Descriptor, len(i.Exercises))
	for n, e := range i.Exercises {
		descs[n] = exercise.Descriptor{
			Name: e.Name,
			Path: e.Path(),
			Mode: e.Mode,
			Hint: e.Hint,
		}
	}
	return descs
}
