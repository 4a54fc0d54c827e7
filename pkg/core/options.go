package core

// Option names a global flag group appended to a tool invocation
type Option string

const (
	// OptionChannels expands to one "-c <channel>" pair per configured channel
	OptionChannels Option = "channels"
	// OptionOverrideChannels expands to --override-channels when enabled
	OptionOverrideChannels Option = "override-channels"
	// OptionOffline expands to --offline when enabled
	OptionOffline Option = "offline"
)

// AllOptions is the option set requested by operations that fetch packages
var AllOptions = []Option{OptionChannels, OptionOverrideChannels, OptionOffline}

// Options is the process-wide tool configuration read at call time
type Options struct {
	Channels         []string `yaml:"channels" json:"channels"`
	OverrideChannels bool     `yaml:"override_channels" json:"override_channels"`
	Offline          bool     `yaml:"offline" json:"offline"`
}

// Flags resolves the requested option names into command line flags.
// Channel pairs come first, then boolean flags in a fixed order.
func (o Options) Flags(requested []Option) []string {
	var flags []string

	if hasOption(requested, OptionChannels) {
		for _, channel := range o.Channels {
			flags = append(flags, "-c", channel)
		}
	}

	if hasOption(requested, OptionOverrideChannels) && o.OverrideChannels {
		flags = append(flags, "--"+string(OptionOverrideChannels))
	}
	if hasOption(requested, OptionOffline) && o.Offline {
		flags = append(flags, "--"+string(OptionOffline))
	}

	return flags
}

func hasOption(list []Option, want Option) bool {
	for _, o := range list {
		if o == want {
			return true
		}
	}
	return false
}
