package appconf

import "strings"

type Environment int

const (
	Development Environment = iota
	Staging
	Production
	Test
)

func (e Environment) String() string {
	switch e {
	case Staging:
		return "staging"
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value to an Environment. Unknown
// values fall back to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "staging":
		return Staging
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds the settings read from command-line flags.
type Config struct {
	Port           int
	Env            Environment
	DataPath       string
	Debug          bool
	RateLimit      int // requests per second per client; 0 disables limiting
	PresetsPath    string
	StrictDefaults bool
}
