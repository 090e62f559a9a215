// Command javasweep removes unused imports from Java source files.
//
// It parses each matched file, binds references against the file's own
// imports, and rewrites the import section. Files whose references cannot
// be fully attributed (for example, names that may come from a wildcard
// import) are reported and left untouched.
//
// The per-import change report ("file: - import;" / "file: + import;") is
// written to stdout so it can be piped or diffed; all diagnostics and
// summary counts go through the logger on stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/goreleaser/fileglob"

	"aspect.build/javaimports/internal/logger"
	"aspect.build/javaimports/java"
	"aspect.build/javaimports/java/parser"
	"aspect.build/javaimports/java/style"
)

// maxWorkerCount bounds the parse/rewrite worker pool.
const maxWorkerCount = 12

var (
	pattern   = flag.String("pattern", "**/*.java", "Glob pattern of Java files to process")
	stylePath = flag.String("style", "", "Path to an import layout style YAML file")
	write     = flag.Bool("write", false, "Rewrite files in place instead of reporting")
	verbose   = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()
	if *verbose {
		logger.SetVerbose()
	}
	if err := mainErr(); err != nil {
		logger.Errorf("failed with error %v", err)
		os.Exit(1)
	}
}

func mainErr() error {
	st := style.Default()
	if *stylePath != "" {
		loaded, err := style.Load(*stylePath)
		if err != nil {
			return err
		}
		st = loaded
	}

	matched, err := fileglob.Glob(*pattern, fileglob.MaybeRootFS)
	if err != nil {
		return err
	}

	files := collectSourceFiles(matched)
	logger.Infof("%q matched %d Java files", *pattern, files.Size())

	changed, skipped, errCount := 0, 0, 0
	for r := range processFiles(files, st) {
		if len(r.ParseErrs) > 0 {
			errCount++
			for _, err := range r.ParseErrs {
				logger.Errorf("%v", err)
			}
			continue
		}
		if r.Skipped != "" {
			skipped++
			logger.Debugf("%s: skipped: %s", r.File, r.Skipped)
			continue
		}
		if len(r.Removed) == 0 && len(r.Added) == 0 {
			continue
		}
		changed++
		// Report lines are the machine-readable output; stdout only.
		for _, imp := range r.Removed {
			fmt.Printf("%s: - %s\n", r.File, imp)
		}
		for _, imp := range r.Added {
			fmt.Printf("%s: + %s\n", r.File, imp)
		}
	}

	verb := "would change"
	if *write {
		verb = "changed"
	}
	logger.Infof("%d total files, %s %d, skipped %d, %d with errors",
		files.Size(), verb, changed, skipped, errCount)

	if errCount > 0 {
		return fmt.Errorf("%d files had parse errors", errCount)
	}
	return nil
}

// collectSourceFiles filters the glob matches down to Java files not
// covered by gitignore patterns.
func collectSourceFiles(matched []string) *treeset.Set {
	files := treeset.NewWithStringComparator()
	isIgnored := gitIgnoreMatcher()
	for _, f := range matched {
		if filepath.Ext(f) != ".java" {
			continue
		}
		if isIgnored.Match(strings.Split(filepath.ToSlash(f), "/"), false) {
			logger.Tracef("ignored: %s", f)
			continue
		}
		files.Add(f)
	}
	return files
}

func gitIgnoreMatcher() gitignore.Matcher {
	patterns, err := gitignore.ReadPatterns(osfs.New("."), nil)
	if err != nil {
		logger.Debugf("no gitignore patterns loaded: %v", err)
		return gitignore.NewMatcher(nil)
	}
	return gitignore.NewMatcher(patterns)
}

// fileReport is the outcome of processing one file.
type fileReport struct {
	File      string
	Removed   []string
	Added     []string
	Skipped   string
	ParseErrs []error
}

// processFiles fans the file set out to a bounded worker pool and returns
// the channel of per-file reports.
func processFiles(files *treeset.Set, st *style.ImportLayoutStyle) chan *fileReport {
	pathChannel := make(chan string)
	reportChannel := make(chan *fileReport)

	workerCount := maxWorkerCount
	if n := 1 + files.Size()/2; n < workerCount {
		workerCount = n
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range pathChannel {
				reportChannel <- processFile(path, st)
			}
		}()
	}

	go func() {
		it := files.Iterator()
		for it.Next() {
			pathChannel <- it.Value().(string)
		}
		close(pathChannel)
	}()

	go func() {
		wg.Wait()
		close(reportChannel)
	}()

	return reportChannel
}

func processFile(path string, st *style.ImportLayoutStyle) *fileReport {
	report := &fileReport{File: path}

	source, err := os.ReadFile(path)
	if err != nil {
		report.ParseErrs = []error{err}
		return report
	}

	res, errs := parser.NewParser().Parse(path, string(source))
	if len(errs) > 0 {
		report.ParseErrs = errs
		return report
	}
	if len(res.Imports) == 0 {
		return report
	}

	unit := bind(res)
	if java.HasUnknownTypes(unit) {
		report.Skipped = "references that need full type attribution"
		return report
	}

	result := java.Rewriter{Style: st}.Rewrite(unit)
	if result == unit {
		return report
	}

	report.Removed, report.Added = diffImports(unit.Imports, result.Imports)

	if *write {
		rewritten := string(source[:res.ImportsStart]) +
			java.Render(result.Imports) +
			string(source[res.ImportsEnd:])
		if err := os.WriteFile(path, []byte(rewritten), 0644); err != nil {
			report.ParseErrs = []error{fmt.Errorf("writing %s: %w", path, err)}
		}
	}

	return report
}

// diffImports reports which canonical import texts were removed from and
// added to the sequence.
func diffImports(before, after []java.Import) (removed, added []string) {
	return diff(texts(before), texts(after))
}

func texts(imports []java.Import) []string {
	out := make([]string, len(imports))
	for i, imp := range imports {
		out[i] = imp.String()
	}
	return out
}

func diff(before, after []string) (removed, added []string) {
	inAfter := map[string]int{}
	for _, s := range after {
		inAfter[s]++
	}
	inBefore := map[string]int{}
	for _, s := range before {
		inBefore[s]++
		if inAfter[s] > 0 {
			inAfter[s]--
		} else {
			removed = append(removed, s)
		}
	}
	for _, s := range after {
		if inBefore[s] > 0 {
			inBefore[s]--
		} else {
			added = append(added, s)
		}
	}
	return removed, added
}
