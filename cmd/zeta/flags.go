package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// initFlags holds flags for the init command.
type initFlags struct {
	common     commonFlags
	repository string
	noNpm      bool
}

// newFlags holds flags for the new command.
type newFlags struct {
	common commonFlags
	title  string
	emoji  string
	typ    string
	topics []string
}

// buildFlags holds flags for the build command.
type buildFlags struct {
	common commonFlags
	all    bool
	jobs   int
}

// removeFlags holds flags for the remove command.
type removeFlags struct {
	common     commonFlags
	keepSource bool
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common   commonFlags
	platform string
	output   string
	style    string
}

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	common commonFlags
	tokens bool
	color  bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags registers --config, --quiet and --verbose.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print debug information")
}

// newFlagSet creates a FlagSet that reports errors and usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

func registerInitFlags(fs *flag.FlagSet, f *initFlags) {
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.repository, "repository", "r", "", "GitHub owner/repo hosting the images")
	fs.BoolVar(&f.noNpm, "no-npm", false, "skip the zenn-cli and qiita-cli setup")
}

func registerNewFlags(fs *flag.FlagSet, f *newFlags) {
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.title, "title", "t", "", "article title (default: from slug)")
	fs.StringVarP(&f.emoji, "emoji", "e", defaultEmoji, "Zenn eye-catch emoji")
	fs.StringVar(&f.typ, "type", typeTech, "Zenn article type: tech, idea")
	fs.StringSliceVar(&f.topics, "topics", nil, "comma-separated topics (max 5)")
}

func registerBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	addCommonFlags(fs, &f.common)
	fs.BoolVarP(&f.all, "all", "a", false, "build every source article")
	fs.IntVarP(&f.jobs, "jobs", "j", 0, "articles built in parallel (0 = auto)")
}

func registerRemoveFlags(fs *flag.FlagSet, f *removeFlags) {
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.keepSource, "keep-source", false, "only remove the compiled outputs")
}

func registerPreviewFlags(fs *flag.FlagSet, f *previewFlags) {
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.platform, "platform", "p", "zenn", "platform to preview: zenn, qiita")
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file")
	fs.StringVarP(&f.style, "style", "s", "", "CSS style name or file path")
}

func registerInspectFlags(fs *flag.FlagSet, f *inspectFlags) {
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.tokens, "tokens", false, "dump the token stream instead of the element tree")
	fs.BoolVar(&f.color, "color", false, "colorize the dump")
}

func registerDoctorFlags(fs *flag.FlagSet, f *doctorFlags) {
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "output results as JSON")
}

func parseInitFlags(args []string, w io.Writer) (*initFlags, []string, error) {
	f := &initFlags{}
	fs := newFlagSet("init", w, printInitUsage)
	registerInitFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseNewFlags(args []string, w io.Writer) (*newFlags, []string, error) {
	f := &newFlags{}
	fs := newFlagSet("new", w, printNewUsage)
	registerNewFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", w, printBuildUsage)
	registerBuildFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseRenameFlags(args []string, w io.Writer) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newFlagSet("rename", w, printRenameUsage)
	addCommonFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseRemoveFlags(args []string, w io.Writer) (*removeFlags, []string, error) {
	f := &removeFlags{}
	fs := newFlagSet("remove", w, printRemoveUsage)
	registerRemoveFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parsePreviewFlags(args []string, w io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newFlagSet("preview", w, printPreviewUsage)
	registerPreviewFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseInspectFlags(args []string, w io.Writer) (*inspectFlags, []string, error) {
	f := &inspectFlags{}
	fs := newFlagSet("inspect", w, printInspectUsage)
	registerInspectFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", w, printDoctorUsage)
	registerDoctorFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
