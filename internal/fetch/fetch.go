// Package fetch pulls raw corpus files listed in a JSON manifest into the
// input tree.
package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/imroc/req/v3"
)

// Entry is one manifest row: a source URL and the path to write it to,
// relative to the input dir.
type Entry struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// LoadManifest reads the manifest file.
func LoadManifest(path string) ([]Entry, error) {
	dataBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(dataBytes, &entries); err != nil {
		return nil, fmt.Errorf("parse manifest %v: %w", path, err)
	}
	return entries, nil
}

// Fetcher downloads manifest entries one by one.
type Fetcher struct {
	client *req.Client
	dir    string
}

func New(dir string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: req.C().SetTimeout(timeout),
		dir:    dir,
	}
}

// FetchAll downloads every entry. A failed entry is logged and skipped; the
// count of failures comes back with the last error.
func (f *Fetcher) FetchAll(entries []Entry) (int, error) {
	var lastErr error
	fetched := 0
	for _, e := range entries {
		fmt.Printf("fetching %v -> %v\n", e.URL, e.Path)
		if err := f.fetchOne(e); err != nil {
			log.Printf("error!!!! %v", err)
			lastErr = err
			continue
		}
		fetched++
	}
	return fetched, lastErr
}

func (f *Fetcher) fetchOne(e Entry) error {
	resp, err := f.client.R().Get(e.URL)
	if err != nil {
		return err
	}
	if !resp.IsSuccessState() {
		fmt.Println("bad response status:", resp.Status)
		return errors.New("bad response status")
	}
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	outPath := filepath.Join(f.dir, e.Path)
	if err := os.MkdirAll(filepath.Dir(outPath), os.ModePerm); err != nil {
		return err
	}
	// write under a throwaway name first so a half-written download never
	// looks like corpus input
	tmpIDStr, _ := uuid.GenerateUUID()
	tmpPath := fmt.Sprintf("%v.%v.tmp", outPath, tmpIDStr)
	if err := os.WriteFile(tmpPath, respBytes, 0666); err != nil {
		return err
	}
	return os.Rename(tmpPath, outPath)
}
