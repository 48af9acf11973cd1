package main

// Sections shared by the usage templates.
const (
	commandsSection = `{{if .HasAvailableSubCommands}}Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}  {{rpad .Name .NamePadding }} {{.Short}}
{{end}}{{end}}
{{end}}`
	examplesSection = `{{if .HasExample}}Examples:
{{.Example}}

{{end}}`
	flagsSection = `{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}`
	inheritedFlagsSection = `{{if .HasAvailableInheritedFlags}}
Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}`
	moreHelpSection = `{{if .HasAvailableSubCommands}}
Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`
)

const subcommandUsageTemplate = `Usage:
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

` + examplesSection + commandsSection + flagsSection + inheritedFlagsSection + moreHelpSection

const rootUsageTemplate = `Usage:
  tecta [text...] [flags]
  echo "text" | tecta [flags]
  {{.CommandPath}} [command]

` + examplesSection + commandsSection + flagsSection + moreHelpSection

const rootExample = `  tecta "A mutex guards the critical section."
  tecta -f article.txt --json
  pbpaste | tecta --provider openai --stats`

const translateExample = `  tecta translate "Kubernetes schedules pods onto nodes."
  tecta translate -f README.md --model gemini-2.5-pro`
