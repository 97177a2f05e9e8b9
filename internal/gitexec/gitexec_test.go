package gitexec

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initGitRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	git(t, dir, "init")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("v1"), 0644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "initial")
	return dir
}

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test.com")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
	return strings.TrimSpace(string(out))
}

func commitFile(t *testing.T, dir, name, content, msg string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", msg)
}

func TestIsClean(t *testing.T) {
	dir := initGitRepo(t)
	r := New(dir)

	clean, err := r.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("dirty"), 0644))
	clean, err = r.IsClean()
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestIsCleanOutsideRepo(t *testing.T) {
	r := New(t.TempDir())
	_, err := r.IsClean()
	assert.Error(t, err)
}

func TestRevertCommit(t *testing.T) {
	dir := initGitRepo(t)
	commitFile(t, dir, "file.txt", "v2", "second")
	r := New(dir)

	_, err := r.RevertCommit("HEAD")
	require.NoError(t, err)

	data, _ := os.ReadFile(filepath.Join(dir, "file.txt"))
	assert.Equal(t, "v1", string(data))
	assert.Contains(t, git(t, dir, "log", "-1", "--format=%s"), "Revert")
}

func TestRevertMerge(t *testing.T) {
	dir := initGitRepo(t)
	git(t, dir, "checkout", "-b", "feature")
	commitFile(t, dir, "feature.txt", "feat", "add feature closes #42")
	git(t, dir, "checkout", "-")
	git(t, dir, "merge", "--no-ff", "-m", "Merge feature (#42)", "feature")
	merge := git(t, dir, "rev-parse", "HEAD")

	r := New(dir)
	_, err := r.RevertMerge(merge)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "feature.txt"))
	assert.True(t, os.IsNotExist(statErr))

	msg, err := r.CommitMessage(merge)
	require.NoError(t, err)
	assert.Contains(t, msg, "#42")
}

func TestRestoreFiles(t *testing.T) {
	dir := initGitRepo(t)
	commitFile(t, dir, "a.js", "a1", "add a")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("a2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.js"), []byte("b2"), 0644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "change both")

	r := New(dir)
	_, err := r.RestoreFiles([]string{"a.js"})
	require.NoError(t, err)

	data, _ := os.ReadFile(filepath.Join(dir, "a.js"))
	assert.Equal(t, "a1", string(data))
	assert.Equal(t, "chore: rollback a.js", git(t, dir, "log", "-1", "--format=%s"))
}

func TestRevertRange(t *testing.T) {
	dir := initGitRepo(t)
	start := git(t, dir, "rev-parse", "HEAD")
	commitFile(t, dir, "one.txt", "1", "one")
	commitFile(t, dir, "two.txt", "2", "two")
	end := git(t, dir, "rev-parse", "HEAD")

	r := New(dir)
	_, err := r.RevertRange(start, end)
	require.NoError(t, err)

	_, err1 := os.Stat(filepath.Join(dir, "one.txt"))
	_, err2 := os.Stat(filepath.Join(dir, "two.txt"))
	assert.True(t, os.IsNotExist(err1))
	assert.True(t, os.IsNotExist(err2))
}

func TestChangedFilesAndSummary(t *testing.T) {
	dir := initGitRepo(t)
	commitFile(t, dir, "x.go", "x", "add x")

	r := New(dir)
	files, err := r.ChangedFiles("HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"x.go"}, files)

	summary, err := r.Summary("HEAD")
	require.NoError(t, err)
	assert.Contains(t, summary, "add x")
}

func TestRangeSummaries(t *testing.T) {
	dir := initGitRepo(t)
	start := git(t, dir, "rev-parse", "HEAD")
	commitFile(t, dir, "one.txt", "1", "one")
	commitFile(t, dir, "two.txt", "2", "two")
	end := git(t, dir, "rev-parse", "HEAD")

	r := New(dir)
	summaries, err := r.RangeSummaries(start, end)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestAmendWith(t *testing.T) {
	dir := initGitRepo(t)
	commitFile(t, dir, "doc.md", "generated", "update doc")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte("restored"), 0644))

	r := New(dir)
	_, err := r.AmendWith(filepath.Join(dir, "doc.md"))
	require.NoError(t, err)

	clean, err := r.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)
	assert.Equal(t, "update doc", git(t, dir, "log", "-1", "--format=%s"))
}

func TestRevertFailureSurfacesOutput(t *testing.T) {
	dir := initGitRepo(t)
	r := New(dir)
	out, err := r.RevertCommit("deadbeef")
	require.Error(t, err)
	assert.NotEmpty(t, out)
}
