package cmds

// GlobalExecutor serves the package-level helpers. Flag-style commands
// defined from package inits (logs, cmd mains) all land here.
var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Execute(args []string) {
	GlobalExecutor.MustExecute(args)
}
