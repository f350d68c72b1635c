// Package bosup pushes a cleaned output tree to Baidu BOS.
package bosup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/baidubce/bce-sdk-go/services/bos"
)

type Uploader struct {
	bucket string
	prefix string
	// put does the actual object write; swapped out in tests
	put func(key, path string) error
}

func New(endpoint, accessKey, secretKey, bucket, prefix string) (*Uploader, error) {
	client, err := bos.NewClient(accessKey, secretKey, endpoint)
	if err != nil {
		return nil, fmt.Errorf("bos client: %w", err)
	}
	u := &Uploader{bucket: bucket, prefix: prefix}
	u.put = func(key, path string) error {
		_, err := client.PutObjectFromFile(bucket, key, path, nil)
		return err
	}
	return u, nil
}

// ObjectKey maps a local output file to its object name under the prefix.
func ObjectKey(prefix, outdir, path string) string {
	rel, err := filepath.Rel(outdir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	if prefix == "" {
		return rel
	}
	return strings.TrimSuffix(prefix, "/") + "/" + rel
}

// UploadDir walks the output tree and puts every file. Failures are
// reported together at the end; the walk keeps going.
func (u *Uploader) UploadDir(outdir string) (int, error) {
	uploaded := 0
	var failed []string
	visitFunc := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		key := ObjectKey(u.prefix, outdir, path)
		fmt.Printf("uploading %v -> bos:/%v/%v\n", path, u.bucket, key)
		if err := u.put(key, path); err != nil {
			fmt.Printf("upload %v: %v\n", path, err)
			failed = append(failed, path)
			return nil
		}
		uploaded++
		return nil
	}
	if err := filepath.Walk(outdir, visitFunc); err != nil {
		return uploaded, err
	}
	if len(failed) > 0 {
		return uploaded, fmt.Errorf("upload failed for %v files", len(failed))
	}
	return uploaded, nil
}
