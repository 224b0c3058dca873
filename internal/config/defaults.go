package config

const (
	defaultConfigPath     = "~/.config/petrarch/config.toml"
	defaultDictionaryDir  = "~/.local/share/petrarch/dictionaries"
	defaultLogDir         = "~/.local/share/petrarch/logs"
	defaultVerbFile       = "CAMEO.verbpatterns.txt"
	defaultActorFile      = "Phoenix.Countries.actors.txt"
	defaultAgentFile      = "Phoenix.agents.txt"
	defaultDiscardFile    = "Phoenix.discards.txt"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultCoderTimeout   = 30
	defaultNewActorLength = 0
	defaultCommaMin       = 2
	defaultCommaMax       = 8
	defaultCommaBMin      = 0
	defaultCommaBMax      = 0
	defaultCommaEMin      = 0
	defaultCommaEMax      = 0
	defaultRequireDyad    = true
	defaultStopOnError    = false
	coderCommandEnv       = "PETRARCH_CODER_COMMAND"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DictionaryDir: defaultDictionaryDir,
			LogDir:        defaultLogDir,
		},
		Dictionaries: Dictionaries{
			VerbFile:    defaultVerbFile,
			ActorFiles:  []string{defaultActorFile},
			AgentFile:   defaultAgentFile,
			DiscardFile: defaultDiscardFile,
		},
		Coding: DefaultRunConfig(),
		Coder: Coder{
			TimeoutSeconds: defaultCoderTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultRunConfig returns the coding thresholds used when no [coding] table
// overrides them.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		NewActorLength: defaultNewActorLength,
		RequireDyad:    defaultRequireDyad,
		StopOnError:    defaultStopOnError,
		CommaMin:       defaultCommaMin,
		CommaMax:       defaultCommaMax,
		CommaBMin:      defaultCommaBMin,
		CommaBMax:      defaultCommaBMax,
		CommaEMin:      defaultCommaEMin,
		CommaEMax:      defaultCommaEMax,
	}
}
