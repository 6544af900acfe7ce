package netelab

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/golangsnmp/netelab/internal/types"
)

// SearchPathEnv names the environment variable holding library
// directories. A leading + appends to the configured paths, a leading -
// prepends, anything else replaces them.
const SearchPathEnv = "NETELAB_PATH"

type pathOp int

const (
	pathReplace pathOp = iota
	pathAppend
	pathPrepend
)

// SearchPaths returns the library directories WithSearchPath would use,
// starting from base (typically a project file's paths).
func SearchPaths(base ...string) []string {
	return discoverSearchPaths(base, types.Logger{})
}

// discoverSearchSources returns one Dir source per search directory.
func discoverSearchSources(base, exts []string, logger *slog.Logger) []Source {
	l := types.Logger{L: types.Component(logger, "searchpath")}
	dirs := discoverSearchPaths(base, l)
	var sources []Source
	for _, d := range dirs {
		if src, err := Dir(d, WithExtensions(exts...)); err == nil {
			sources = append(sources, src)
		}
	}
	l.Log(slog.LevelDebug, "search path",
		slog.Int("dirs", len(dirs)),
		slog.Any("paths", dirs))
	return sources
}

// discoverSearchPaths applies the path files and NETELAB_PATH to base,
// in that order, and keeps the directories that exist.
func discoverSearchPaths(base []string, logger types.Logger) []string {
	paths := append([]string(nil), base...)
	for _, cf := range searchPathFiles() {
		paths = applyConfigFile(cf, paths, parsePathLine, logger)
	}
	if v := os.Getenv(SearchPathEnv); v != "" {
		paths = applyEnv(v, paths)
	}
	return filterExistingDirs(dedup(paths))
}

func searchPathFiles() []string {
	files := []string{"/etc/netelab/paths"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".netelab", "paths"))
	}
	return files
}

// parsePathLine parses one line of a path file. Both "path +/dir"
// (prefix on the value) and "+path /dir" (prefix on the directive) are
// accepted.
func parsePathLine(line string) (pathOp, []string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return 0, nil, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, nil, false
	}

	switch fields[0] {
	case "path":
		op, dirs := parsePrefixed(fields[1])
		return op, dirs, true
	case "+path":
		return pathAppend, splitPaths(fields[1]), true
	case "-path":
		return pathPrepend, splitPaths(fields[1]), true
	}
	return 0, nil, false
}

func parsePrefixed(value string) (pathOp, []string) {
	if rest, ok := strings.CutPrefix(value, "+"); ok {
		return pathAppend, splitPaths(rest)
	}
	if rest, ok := strings.CutPrefix(value, "-"); ok {
		return pathPrepend, splitPaths(rest)
	}
	return pathReplace, splitPaths(value)
}

func applyEnv(value string, current []string) []string {
	op, dirs := parsePrefixed(value)
	return applyOp(op, dirs, current)
}

func applyOp(op pathOp, dirs, current []string) []string {
	switch op {
	case pathAppend:
		return append(current, dirs...)
	case pathPrepend:
		return append(dirs, current...)
	default:
		return dirs
	}
}

func applyConfigFile(path string, current []string, parseLine func(string) (pathOp, []string, bool), logger types.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		return current
	}
	defer f.Close() //nolint:errcheck // best-effort path file read

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		op, dirs, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		current = applyOp(op, dirs, current)
	}
	if err := scanner.Err(); err != nil {
		logger.Log(slog.LevelDebug, "error reading path file", slog.String("path", path), slog.Any("error", err))
	}
	return current
}

func splitPaths(s string) []string {
	var result []string
	for p := range strings.SplitSeq(s, string(os.PathListSeparator)) {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var result []string
	for _, p := range paths {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			result = append(result, p)
		}
	}
	return result
}

func filterExistingDirs(paths []string) []string {
	var result []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			result = append(result, p)
		}
	}
	return result
}
