package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-zeta/internal/fileutil"
	"github.com/alnah/go-zeta/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Git      gitInfo     `json:"git"`
	Node     nodeInfo    `json:"node"`
	Project  projectInfo `json:"project"`
	Env      envInfo     `json:"environment"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// gitInfo holds git detection and remote resolution results.
type gitInfo struct {
	Found   bool   `json:"found"`
	Version string `json:"version,omitempty"`
	Branch  string `json:"branch,omitempty"` // branch used in image URLs
}

// nodeInfo holds npx and CLI installation results.
type nodeInfo struct {
	Npx      bool   `json:"npx"`
	Version  string `json:"version,omitempty"`
	ZennCLI  bool   `json:"zenn_cli"`
	QiitaCLI bool   `json:"qiita_cli"`
}

// projectInfo holds project layout results.
type projectInfo struct {
	Dir        string `json:"dir"`
	Config     bool   `json:"config"`
	Repository string `json:"repository,omitempty"`
	Articles   int    `json:"articles"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	f, _, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return flagExit(env, err, printDoctorUsage)
	}
	env.configureLogger(f.common)

	result := runDoctor(env, f.common)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment, common commonFlags) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkEnvironment(result)
	checkGit(env, result)
	p := checkProject(env, common, result)
	checkNode(env, result)
	if p != nil && result.Git.Found {
		checkRemote(env, p, result)
	}

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container = hints.IsInContainer()
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkGit runs git --version.
func checkGit(env *Environment, result *doctorResult) {
	dir, _ := env.projectDir()
	out, err := env.run(dir, "git", "--version")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("git not found: %v", err))
		return
	}
	result.Git.Found = true
	result.Git.Version = strings.TrimSpace(string(out))
}

// checkProject loads the config and counts source articles. It returns nil
// when the project cannot be opened.
func checkProject(env *Environment, common commonFlags, result *doctorResult) *project {
	p, err := openProject(env, common)
	if err != nil {
		result.Project.Dir, _ = env.projectDir()
		result.Errors = append(result.Errors, err.Error())
		return nil
	}

	result.Project.Dir = p.dir
	result.Project.Config = true
	result.Project.Repository = p.config.Repository

	for _, d := range []string{p.config.SourceDir, p.config.ZennDir, p.config.QiitaDir} {
		if !fileutil.DirExists(filepath.Join(p.dir, d)) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Directory %s does not exist yet", d))
		}
	}

	slugs, err := p.store.List()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	}
	result.Project.Articles = len(slugs)

	if p.config.Repository == "" {
		result.Warnings = append(result.Warnings,
			"repository not set: Qiita articles keep local image paths"+hints.ForRepository())
	}
	return p
}

// checkNode runs npx --version and looks for the locally installed CLIs.
func checkNode(env *Environment, result *doctorResult) {
	dir := result.Project.Dir
	out, err := env.run(dir, "npx", "--version")
	if err != nil {
		result.Warnings = append(result.Warnings, "npx not found: zeta init cannot install the CLIs"+hints.ForNpx())
	} else {
		result.Node.Npx = true
		result.Node.Version = strings.TrimSpace(string(out))
	}

	bin := filepath.Join(dir, "node_modules", ".bin")
	result.Node.ZennCLI = fileutil.FileExists(filepath.Join(bin, "zenn"))
	result.Node.QiitaCLI = fileutil.FileExists(filepath.Join(bin, "qiita"))
	if !result.Node.ZennCLI || !result.Node.QiitaCLI {
		result.Warnings = append(result.Warnings, "zenn-cli or qiita-cli not installed locally: run zeta init")
	}
}

// checkRemote resolves the branch image URLs point at.
func checkRemote(env *Environment, p *project, result *doctorResult) {
	resolver, err := p.imageResolver(env)
	if err != nil || resolver == nil {
		return
	}
	branch, err := resolver.Branch()
	if err != nil {
		result.Errors = append(result.Errors, err.Error()+hints.ForGitRemote(p.config.Remote))
		return
	}
	result.Git.Branch = branch
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "zeta doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Git")
	if r.Git.Found {
		fmt.Fprintf(w, "  [OK] %s\n", r.Git.Version)
		if r.Git.Branch != "" {
			fmt.Fprintf(w, "  [OK] Image branch: %s\n", r.Git.Branch)
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Node")
	if r.Node.Npx {
		fmt.Fprintf(w, "  [OK] npx %s\n", r.Node.Version)
	} else {
		fmt.Fprintln(w, "  [WARN] npx not found")
	}
	printCheck(w, r.Node.ZennCLI, "zenn-cli")
	printCheck(w, r.Node.QiitaCLI, "qiita-cli")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Project")
	fmt.Fprintf(w, "  [OK] Directory: %s\n", r.Project.Dir)
	if r.Project.Config {
		fmt.Fprintln(w, "  [OK] Config: loaded")
		if r.Project.Repository != "" {
			fmt.Fprintf(w, "  [OK] Repository: %s\n", r.Project.Repository)
		}
		fmt.Fprintf(w, "  [OK] Articles: %d\n", r.Project.Articles)
	} else {
		fmt.Fprintln(w, "  [ERROR] Config: not loaded")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printCheck(w io.Writer, ok bool, name string) {
	if ok {
		fmt.Fprintf(w, "  [OK] %s installed\n", name)
	} else {
		fmt.Fprintf(w, "  [WARN] %s not installed\n", name)
	}
}
