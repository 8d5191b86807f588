package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write one Markdown article, publish it on Zenn and Qiita.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  init         Create zeta.yaml and set up zenn-cli and qiita-cli")
	fmt.Fprintln(w, "  new          Create a source article")
	fmt.Fprintln(w, "  build        Compile source articles for Zenn and Qiita")
	fmt.Fprintln(w, "  rename       Rename an article and its outputs")
	fmt.Fprintln(w, "  remove       Remove an article and its outputs")
	fmt.Fprintln(w, "  preview      Render a compiled article as HTML")
	fmt.Fprintln(w, "  inspect      Dump the parsed element tree of an article")
	fmt.Fprintln(w, "  doctor       Check git, npx and project setup")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'zeta help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags every command accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <name>     Config file name or path (default: zeta.yaml)")
	fmt.Fprintln(w, "  -q, --quiet             Only print errors")
	fmt.Fprintln(w, "  -v, --verbose           Print debug information")
}

func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create zeta.yaml, the source and images directories, and install")
	fmt.Fprintln(w, "zenn-cli and @qiita/qiita-cli with npm.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -r, --repository <s>    GitHub owner/repo hosting the images (prompted if empty)")
	fmt.Fprintln(w, "      --no-npm            Skip npm init, installs and the CLIs' init")
	printCommonFlags(w)
}

func printNewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta new <slug> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create <sourceDir>/<slug>.md from the article template.")
	fmt.Fprintln(w, "Slugs use a-z, 0-9, '-' and '_'; Zenn requires 12 to 50 characters.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -t, --title <s>         Article title (default: from slug)")
	fmt.Fprintln(w, "  -e, --emoji <s>         Zenn eye-catch emoji")
	fmt.Fprintln(w, "      --type <s>          Zenn article type: tech, idea")
	fmt.Fprintln(w, "      --topics <a,b>      Topics (max 5)")
	printCommonFlags(w)
}

func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta build <slug>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile source articles into <zennDir>/<slug>.md and <qiitaDir>/<slug>.md.")
	fmt.Fprintln(w, "Articles with errors are reported as path:row:column and not written.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --all               Build every source article")
	fmt.Fprintln(w, "  -j, --jobs <n>          Articles built in parallel (default: half the CPUs, max 8)")
	printCommonFlags(w)
}

func printRenameUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta rename <old-slug> <new-slug> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rename a source article and its compiled outputs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	printCommonFlags(w)
}

func printRemoveUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta remove <slug> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove a source article and its compiled outputs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --keep-source       Only remove the compiled outputs")
	printCommonFlags(w)
}

func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta preview <slug> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile an article and render it as a standalone HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -p, --platform <s>      Platform to preview: zenn, qiita (default: zenn)")
	fmt.Fprintln(w, "  -o, --output <path>     Output file (default: <preview.outputDir>/<slug>.<platform>.html)")
	fmt.Fprintln(w, "  -s, --style <s>         CSS style name or file path (default: preview.style)")
	printCommonFlags(w)
}

func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta inspect <slug> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dump the parsed element tree of a source article.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --tokens            Dump the token stream instead")
	fmt.Fprintln(w, "      --color             Colorize the dump")
	printCommonFlags(w)
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: zeta doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check git, the image repository remote, npx and the project layout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json              Output results as JSON")
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  All checks passed")
	fmt.Fprintln(w, "  1  At least one check failed")
}

// usages maps command names to their usage printers.
var usages = map[string]func(io.Writer){
	"init":       printInitUsage,
	"new":        printNewUsage,
	"build":      printBuildUsage,
	"rename":     printRenameUsage,
	"remove":     printRemoveUsage,
	"preview":    printPreviewUsage,
	"inspect":    printInspectUsage,
	"doctor":     printDoctorUsage,
	"completion": printCompletionUsage,
}

// runHelp prints help for the command named in args, or the main usage.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: zeta version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
		return ExitSuccess
	case "help":
		printUsage(env.Stdout)
		return ExitSuccess
	}

	usage, ok := usages[args[0]]
	if !ok {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	usage(env.Stdout)
	return ExitSuccess
}
