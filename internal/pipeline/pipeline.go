// Package pipeline runs the batch clean over an input tree, mirroring the
// directory layout under the output tree with a worker pool over files.
package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dialogkit/postfilter/internal/cleaner"
	"github.com/dialogkit/postfilter/internal/dialog"
)

// Options controls one batch run.
type Options struct {
	InDir  string
	OutDir string
	// ExtraClean turns the source-specific rule chain on
	ExtraClean bool
	// RequireChinese drops utterances without a CJK rune
	RequireChinese bool
	// NFKC folds full-width forms before cleaning
	NFKC      bool
	MinLength int
	MaxLength int
	Workers   int
}

func (o Options) withDefaults() Options {
	if o.MinLength == 0 {
		o.MinLength = 5
	}
	if o.MaxLength == 0 {
		o.MaxLength = 200
	}
	if o.Workers <= 0 {
		o.Workers = 16
	}
	return o
}

// FileResult is the per-file slice of the run report.
type FileResult struct {
	Path      string `json:"path"`
	OutPath   string `json:"out_path"`
	Dialogs   int    `json:"dialogs"`
	Fragments int    `json:"fragments"`
	Lines     int    `json:"lines"`
	Err       string `json:"error,omitempty"`
}

// Report summarizes one batch run.
type Report struct {
	RunID   string        `json:"run_id"`
	InDir   string        `json:"in_dir"`
	OutDir  string        `json:"out_dir"`
	Workers int           `json:"workers"`
	Elapsed float64       `json:"elapsed_seconds"`
	Files   []*FileResult `json:"files"`
}

// collectVisit appends .txt files and skips unreadable entries, so one bad
// directory never stops the walk.
func collectVisit(paths *[]string) filepath.WalkFunc {
	return func(path string, info os.FileInfo, err error) error {
		if err != nil {
			fmt.Printf("Error accessing path %q: %v\n", path, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".txt") {
			*paths = append(*paths, path)
		}
		return nil
	}
}

// CollectFiles gathers the .txt files under the input tree.
func CollectFiles(indir string) ([]string, error) {
	var paths []string
	if err := filepath.Walk(indir, collectVisit(&paths)); err != nil {
		return nil, fmt.Errorf("walk %v: %w", indir, err)
	}
	return paths, nil
}

// OutPath mirrors the input path under the output tree.
func OutPath(path, indir, outdir string) string {
	return strings.Replace(path, indir, outdir, 1)
}

// ProcessFile cleans one corpus file and writes the kept fragments. Errors
// land in the result, not in the return path: a bad file must not stop the
// run.
func ProcessFile(path, outPath string, opts Options) *FileResult {
	opts = opts.withDefaults()
	res := &FileResult{Path: path, OutPath: outPath}
	fmt.Printf("loading %v\n", path)
	fmt.Printf("outpath %v\n", outPath)

	data, err := loadTxt(path)
	if err != nil {
		res.Err = err.Error()
		log.Printf("error!!!! %v", err)
		return res
	}
	res.Dialogs = len(data)

	dataType := cleaner.DataTypeOf(path)
	var runs [][]string
	for _, line := range data {
		seqs := dialog.Split(line)
		cleaned := make([]string, 0, len(seqs))
		for _, seq := range seqs {
			if opts.NFKC {
				seq = cleaner.FoldNFKC(seq)
			}
			seq = strings.ReplaceAll(seq, " ", "")
			if opts.ExtraClean {
				seq = cleaner.Clean(seq, dataType)
			}
			if opts.RequireChinese && !cleaner.ContainsChinese(seq) {
				seq = ""
			}
			cleaned = append(cleaned, seq)
		}
		runs = append(runs, dialog.Segment(cleaned, opts.MaxLength)...)
	}
	res.Fragments = len(runs)

	lines := dialog.Expand(runs, opts.MinLength)
	res.Lines = len(lines)
	if err := saveTxt(strings.Join(lines, "\n"), outPath); err != nil {
		res.Err = err.Error()
		log.Printf("error!!!! %v", err)
		return res
	}
	fmt.Printf("over %v\n", path)
	return res
}

// Run walks the input tree and fans the files out over the pool.
func Run(opts Options) (*Report, error) {
	opts = opts.withDefaults()
	// Walk hands back cleaned paths, so the mirrored prefix must be cleaned too
	opts.InDir = filepath.Clean(opts.InDir)
	opts.OutDir = filepath.Clean(opts.OutDir)
	paths, err := CollectFiles(opts.InDir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:   uuid.NewString(),
		InDir:   opts.InDir,
		OutDir:  opts.OutDir,
		Workers: opts.Workers,
	}

	fmt.Println("start")
	start := time.Now()
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for _, path := range paths {
		path := path
		outPath := OutPath(path, opts.InDir, opts.OutDir)
		if err := os.MkdirAll(filepath.Dir(outPath), os.ModePerm); err != nil {
			mu.Lock()
			report.Files = append(report.Files, &FileResult{Path: path, OutPath: outPath, Err: err.Error()})
			mu.Unlock()
			log.Printf("error!!!! %v", err)
			continue
		}
		g.Go(func() error {
			res := ProcessFile(path, outPath, opts)
			mu.Lock()
			report.Files = append(report.Files, res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	report.Elapsed = time.Since(start).Seconds()
	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Path < report.Files[j].Path
	})
	fmt.Println("over")
	return report, nil
}
