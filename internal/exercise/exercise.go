package exercise

// Mode selects how an exercise is executed by the runner.
type Mode string

const (
	ModeRun   Mode = "run"   // Build and run the program; exit status decides
	ModeTest  Mode = "test"  // Run the package tests
	ModeBuild Mode = "build" // Compile and vet only
)

// AllModes returns all modes in display order.
func AllModes() []Mode {
	return []Mode{ModeRun, ModeTest, ModeBuild}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeRun, ModeTest, ModeBuild:
		return true
	default:
		return false
	}
}

// Descriptor is an already-validated exercise definition from the curriculum.
type Descriptor struct {
	Name string
	Path string
	Mode Mode
	Hint string
}

// Exercise is a single curriculum item.
// Only Done changes after the registry is built, and only the progress
// state machine changes it.
type Exercise struct {
	Name string
	Path string
	Mode Mode
	Hint string
	Done bool
}

// String returns the exercise path, which is what learners see and edit.
func (e *Exercise) String() string {
	return e.Path
}
