package command

import "sort"

var registry = map[string]Command{}

// Register adds a command to the global registry, wrapped in the given
// middlewares (applied right to left). Called from init() in each command
// package.
func Register(cmd Command, mws ...Middleware) {
	for i := len(mws) - 1; i >= 0; i-- {
		cmd = mws[i](cmd)
	}
	registry[cmd.Name()] = cmd
}

func Get(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

func All() []Command {
	list := make([]Command, 0, len(registry))
	for _, cmd := range registry {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}
