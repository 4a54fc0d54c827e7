// constants.go
package conda

const (
	// EnvsFolder is the folder under the root prefix holding named environments
	EnvsFolder = "envs"

	// PrefixVariable points the tool at the active environment
	PrefixVariable = "CONDA_PREFIX"

	// importPattern names the temporary listing written by ImportEnvironment
	importPattern = "condenv-import-*.txt"
)

// Tool subcommands. Mutating commands always pass -y -q --json.
const (
	cmdInfo        = "info --json"
	cmdConfigShow  = "config --show --json"
	cmdCreate      = "create -y -q --json"
	cmdEnvRemove   = "env remove -y -q --json"
	cmdExport      = "list -e"
	cmdList        = "list --no-pip --json"
	cmdSearch      = "search --json"
	cmdCheckUpdate = "update --dry-run -q --json"
	cmdInstall     = "install -y -q --json"
	cmdUpdate      = "update -y -q --json"
	cmdRemove      = "remove -y -q --json"
)

// Operation names used in failures and logs
const (
	OpListEnvironments = "list environments"
	OpCreate           = "create"
	OpClone            = "clone"
	OpDelete           = "delete"
	OpImport           = "import"
	OpExport           = "export"
	OpListPackages     = "list packages"
	OpSearch           = "search"
	OpCheckUpdates     = "check updates"
	OpInstall          = "install"
	OpUpdate           = "update"
	OpRemove           = "remove"
	OpChannels         = "resolve channels"
)
