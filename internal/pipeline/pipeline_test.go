package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
}

func TestOutPath(t *testing.T) {
	assert.Equal(t, "./out/zhihu/a.txt", OutPath("./raw/zhihu/a.txt", "./raw", "./out"))
	assert.Equal(t, "/data/clean/x.txt", OutPath("/data/raw/x.txt", "/data/raw", "/data/clean"))
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "x")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "x")
	writeFile(t, filepath.Join(dir, "sub", "c.json"), "x")

	paths, err := CollectFiles(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.True(t, strings.HasSuffix(paths[0], "a.txt"))
	assert.True(t, strings.HasSuffix(paths[1], "b.txt"))
}

func TestCollectVisitSkipsUnreadable(t *testing.T) {
	var paths []string
	visit := collectVisit(&paths)
	// an access error must not abort the walk or record the path
	assert.NoError(t, visit("raw/broken", nil, errors.New("permission denied")))
	assert.Empty(t, paths)
}

func TestLoadTxt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "  你好\t\t世界啊  \n\n\xff第二行\r\n")

	data, err := loadTxt(path)
	require.NoError(t, err)
	// blank lines dropped, surrounding whitespace trimmed, bad bytes ignored
	assert.Equal(t, []string{"你好\t\t世界啊", "第二行"}, data)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "zhihu", "a.txt")
	out := filepath.Join(dir, "out", "a.txt")
	content := strings.Join([]string{
		"你好 呀\t\t你好你好你好\t\t吃了吗",
		"问题来了… 显示全部\t\t这是个很长的回答哦\t\t哦",
		"在吗\t\t看http://t.cn/x\t\t在的\t\t好的好的好的",
	}, "\n")
	writeFile(t, in, content)
	require.NoError(t, os.MkdirAll(filepath.Dir(out), os.ModePerm))

	res := ProcessFile(in, out, Options{ExtraClean: true})
	assert.Empty(t, res.Err)
	assert.Equal(t, 3, res.Dialogs)
	assert.Equal(t, 3, res.Fragments)
	assert.Equal(t, 3, res.Lines)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	expected := strings.Join([]string{
		"你好呀\t\t你好你好你好",
		"问题来了\t\t这是个很长的回答哦",
		"在的\t\t好的好的好的",
	}, "\n")
	assert.Equal(t, expected, string(got))
}

func TestProcessFileMentionBreaks(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tieba", "b.txt")
	out := filepath.Join(dir, "out", "b.txt")
	writeFile(t, in, "@abc 在吗\t\t你好\t\t很高兴认识你啊")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), os.ModePerm))

	res := ProcessFile(in, out, Options{ExtraClean: true})
	assert.Empty(t, res.Err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "你好\t\t很高兴认识你啊", string(got))
}

func TestProcessFileRequireChinese(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "mixed.txt")
	out := filepath.Join(dir, "out.txt")
	writeFile(t, in, "hello there\t\t你好\t\t很高兴认识你啊")

	res := ProcessFile(in, out, Options{ExtraClean: true, RequireChinese: true})
	assert.Empty(t, res.Err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	// the English opener breaks, the Chinese pair survives
	assert.Equal(t, "你好\t\t很高兴认识你啊", string(got))
}

func TestProcessFileNFKC(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "w.txt")
	out := filepath.Join(dir, "o.txt")
	writeFile(t, in, "ＡＢＣＤＥ你好\t\t你好你好你好")

	res := ProcessFile(in, out, Options{ExtraClean: true, NFKC: true})
	assert.Empty(t, res.Err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "ABCDE你好\t\t你好你好你好", string(got))
}

func TestProcessFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	res := ProcessFile(filepath.Join(dir, "nope.txt"), filepath.Join(dir, "out.txt"), Options{})
	assert.NotEmpty(t, res.Err)
	assert.Equal(t, 0, res.Dialogs)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw")
	out := filepath.Join(dir, "clean")
	writeFile(t, filepath.Join(in, "zhihu", "a.txt"), "你好呀\t\t你好你好你好")
	writeFile(t, filepath.Join(in, "tieba", "b.txt"), "在吗\t\t好的好的好的")

	report, err := Run(Options{InDir: in, OutDir: out, ExtraClean: true, Workers: 2})
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	assert.NotEmpty(t, report.RunID)
	for _, f := range report.Files {
		assert.Empty(t, f.Err)
		assert.Equal(t, 1, f.Lines)
	}

	// mirrored tree
	_, err = os.Stat(filepath.Join(out, "zhihu", "a.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "tieba", "b.txt"))
	assert.NoError(t, err)

	path, err := WriteReport(report, out)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Contains(t, report.Summary(), "files:2")
}
