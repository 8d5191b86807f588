package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-zeta/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesSlugs bool // completes article slugs from the source directory
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSets.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"platform": {Values: []string{"zenn", "qiita"}},
	"type":     {Values: []string{typeTech, typeIdea}},
	"config":   {FileGlob: "*.yaml,*.yml"},
	"style":    {FileGlob: "*.css"},
	"output":   {FileGlob: "*.html"},
}

// commandFlagSets builds the FlagSet of every command with flags, using the
// same registration as parsing.
func commandFlagSets() map[string]*flag.FlagSet {
	sets := make(map[string]*flag.FlagSet)
	add := func(name string, register func(*flag.FlagSet)) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		register(fs)
		sets[name] = fs
	}
	add("init", func(fs *flag.FlagSet) { registerInitFlags(fs, &initFlags{}) })
	add("new", func(fs *flag.FlagSet) { registerNewFlags(fs, &newFlags{}) })
	add("build", func(fs *flag.FlagSet) { registerBuildFlags(fs, &buildFlags{}) })
	add("rename", func(fs *flag.FlagSet) { addCommonFlags(fs, &commonFlags{}) })
	add("remove", func(fs *flag.FlagSet) { registerRemoveFlags(fs, &removeFlags{}) })
	add("preview", func(fs *flag.FlagSet) { registerPreviewFlags(fs, &previewFlags{}) })
	add("inspect", func(fs *flag.FlagSet) { registerInspectFlags(fs, &inspectFlags{}) })
	add("doctor", func(fs *flag.FlagSet) { registerDoctorFlags(fs, &doctorFlags{}) })
	return sets
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion, sorted by name.
func getCommands() []commandDef {
	descs := map[string]string{
		"init":       "Create zeta.yaml and set up zenn-cli and qiita-cli",
		"new":        "Create a source article",
		"build":      "Compile source articles for Zenn and Qiita",
		"rename":     "Rename an article and its outputs",
		"remove":     "Remove an article and its outputs",
		"preview":    "Render a compiled article as HTML",
		"inspect":    "Dump the parsed element tree of an article",
		"doctor":     "Check git, npx and project setup",
		"completion": "Generate shell completion script",
		"version":    "Show version information",
		"help":       "Show help for a command",
	}
	takesSlugs := map[string]bool{"build": true, "rename": true, "remove": true, "preview": true, "inspect": true}

	sets := commandFlagSets()
	cmds := make([]commandDef, 0, len(descs))
	for name, desc := range descs {
		cmd := commandDef{Name: name, Desc: desc, TakesSlugs: takesSlugs[name]}
		if fs, ok := sets[name]; ok {
			cmd.Flags = extractFlagsFromFlagSet(fs)
		}
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// slugGlob lists source articles of a project with the default layout.
const slugGlob = config.DefaultSourceDir + "/*.md"

func generateBash(cmds []commandDef) string {
	var b strings.Builder
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}

	b.WriteString("# bash completion for zeta\n")
	b.WriteString("_zeta_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesSlugs {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var enums []string
		for _, f := range c.Flags {
			if f.Type == flagEnum {
				enums = append(enums, fmt.Sprintf("            --%s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n",
					f.Long, strings.Join(f.Values, " ")))
			}
		}
		if len(enums) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, e := range enums {
				b.WriteString(e)
			}
			b.WriteString("        esac\n")
		}

		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(words, " "))
		if c.TakesSlugs {
			b.WriteString("        else\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"$(ls %s 2>/dev/null | sed 's|.*/||; s|\\.md$||')\" -- \"$cur\"))\n", slugGlob)
		}
		b.WriteString("        fi\n")
		b.WriteString("        ;;\n")
	}
	b.WriteString("    completion)\n")
	b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _zeta_completions zeta\n")
	return b.String()
}

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef zeta\n\n")
	b.WriteString("_zeta_slugs() {\n")
	fmt.Fprintf(&b, "    local -a slugs\n    slugs=(%s(N:t:r))\n", slugGlob)
	b.WriteString("    _describe 'article' slugs\n")
	b.WriteString("}\n\n")
	b.WriteString("_zeta() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if c.Name == "completion" {
			b.WriteString("    completion)\n        _values 'shell' bash zsh fish\n        ;;\n")
			continue
		}
		if len(c.Flags) == 0 && !c.TakesSlugs {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "            '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), zshAction(f))
		}
		if c.TakesSlugs {
			b.WriteString("            '*:article:_zeta_slugs'\n")
		} else {
			b.WriteString("            '*: :'\n")
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _zeta zeta\n")
	return b.String()
}

// zshAction returns the _arguments action suffix for a flag.
func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		globs := strings.Split(f.FileGlob, ",")
		return ":file:_files -g '(" + strings.Join(globs, "|") + ")'"
	case flagDir:
		return ":directory:_files -/"
	default:
		return ":value:"
	}
}

func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", "'\\''")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return strings.ReplaceAll(s, ":", "\\:")
}

func generateFish(cmds []commandDef) string {
	var b strings.Builder
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}

	b.WriteString("# fish completion for zeta\n")
	b.WriteString("function __fish_zeta_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_zeta_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_zeta_slugs\n")
	fmt.Fprintf(&b, "    for f in %s\n        basename $f .md\n    end\n", slugGlob)
	b.WriteString("end\n\n")
	b.WriteString("complete -c zeta -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c zeta -n __fish_zeta_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_zeta_using_command %s'", c.Name)
		if c.Name == "completion" {
			fmt.Fprintf(&b, "complete -c zeta -n %s -a 'bash zsh fish'\n", cond)
		}
		if c.TakesSlugs {
			fmt.Fprintf(&b, "complete -c zeta -n %s -a '(__fish_zeta_slugs)'\n", cond)
		}
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c zeta -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile, flagDir:
				b.WriteString(" -r -F")
			case flagString:
				b.WriteString(" -x")
			}
			fmt.Fprintf(&b, " -d %s\n", fishQuote(f.Desc))
		}
	}
	return b.String()
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}

func runCompletionCmd(args []string, env *Environment) int {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return ExitSuccess
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		return fail(env, err)
	}
	return ExitSuccess
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(zeta completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(zeta completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    zeta completion fish > ~/.config/fish/completions/zeta.fish")
}
