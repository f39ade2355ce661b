package internal

// Separator ends wrapper parsing. Everything after it is a raw command.
const Separator = "--"

// Options are the wrapper flags consumed before the inner tool sees the arguments.
type Options struct {
	Image     string
	Project   string
	Pull      bool
	NoDevices bool
	NoUserMap bool
	Ccache    bool
}

// Option describes one wrapper flag. Flags with TakesValue consume the next token.
type Option struct {
	Name       string
	TakesValue bool
	Usage      string
	Apply      func(options *Options, value string)
}

// WrapperOptions is the flag table shared by every entry point.
var WrapperOptions = []Option{
	{
		Name:       "--image",
		TakesValue: true,
		Usage:      "override the toolchain image",
		Apply:      func(o *Options, v string) { o.Image = v },
	},
	{
		Name:  "--pull",
		Usage: "pull the image before running",
		Apply: func(o *Options, _ string) { o.Pull = true },
	},
	{
		Name:  "--no-devices",
		Usage: "do not map serial devices into the container",
		Apply: func(o *Options, _ string) { o.NoDevices = true },
	},
	{
		Name:  "--no-user-map",
		Usage: "do not run as the host uid:gid",
		Apply: func(o *Options, _ string) { o.NoUserMap = true },
	},
	{
		Name:  "--ccache",
		Usage: "mount the host ccache directory",
		Apply: func(o *Options, _ string) { o.Ccache = true },
	},
	{
		Name:       "--project",
		TakesValue: true,
		Usage:      "mount this directory instead of the working directory",
		Apply:      func(o *Options, v string) { o.Project = v },
	},
}

// Invocation is a routed argument vector.
type Invocation struct {
	Options     Options
	Passthrough []string
	Raw         []string

	// Dangling lists value-taking flags that had no value. They are dropped
	// rather than forwarded.
	Dangling []string
}

// Route splits args into wrapper options, passthrough tokens and the raw
// command after the first separator. Passthrough tokens keep their relative
// order and tokens after the separator are never interpreted.
func Route(table []Option, args []string) Invocation {
	index := make(map[string]Option, len(table))
	for _, option := range table {
		index[option.Name] = option
	}

	var invocation Invocation

	wrapperArgs := args
	for i, arg := range args {
		if arg == Separator {
			wrapperArgs = args[:i]
			invocation.Raw = append([]string{}, args[i+1:]...)
			break
		}
	}

	for i := 0; i < len(wrapperArgs); i++ {
		arg := wrapperArgs[i]

		option, ok := index[arg]
		if !ok {
			invocation.Passthrough = append(invocation.Passthrough, arg)
			continue
		}

		if !option.TakesValue {
			option.Apply(&invocation.Options, "")
			continue
		}

		if i+1 >= len(wrapperArgs) {
			invocation.Dangling = append(invocation.Dangling, arg)
			continue
		}

		option.Apply(&invocation.Options, wrapperArgs[i+1])
		i++
	}

	return invocation
}

// Inner returns the command to run inside the container. A non-empty raw
// command replaces the entry point and the passthrough tokens entirely.
func (i Invocation) Inner(entry ...string) Command {
	if len(i.Raw) > 0 {
		return Command(append([]string{}, i.Raw...))
	}

	inner := make([]string, 0, len(entry)+len(i.Passthrough))
	inner = append(inner, entry...)
	inner = append(inner, i.Passthrough...)
	return Command(inner)
}
