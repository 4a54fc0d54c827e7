package core

// RootEnvironmentName is the name reported for the tool's root prefix
const RootEnvironmentName = "base"

// Environment is an isolated interpreter plus package set rooted at Dir
type Environment struct {
	Name      string `json:"name" yaml:"name"`
	Dir       string `json:"dir" yaml:"dir"`
	IsDefault bool   `json:"is_default" yaml:"is_default"`
}

// EnvironmentList is the result of listing environments
type EnvironmentList struct {
	Environments []Environment `json:"environments" yaml:"environments"`
}

// Find returns the environment with the given name
func (l EnvironmentList) Find(name string) (Environment, bool) {
	for _, env := range l.Environments {
		if env.Name == name {
			return env, true
		}
	}
	return Environment{}, false
}
