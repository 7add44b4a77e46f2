package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"video2audio/domain/audio"
	"video2audio/infrastructure/ffmpeg"
	"video2audio/infrastructure/filesystem"
	"video2audio/infrastructure/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConverter writes an empty output file per job and fails for configured inputs
type fakeConverter struct {
	jobs      []audio.ConversionJob
	failOn    map[string]bool
	verifyErr error
	verified  bool
}

func (f *fakeConverter) Convert(ctx context.Context, job audio.ConversionJob) error {
	f.jobs = append(f.jobs, job)
	if f.failOn[filepath.Base(job.InputPath)] {
		return &audio.ConversionError{Job: job, Stderr: "Invalid data found when processing input", Err: errors.New("exit status 1")}
	}
	return os.WriteFile(job.OutputPath, nil, 0644)
}

func (f *fakeConverter) VerifyInstalled(ctx context.Context) error {
	f.verified = true
	return f.verifyErr
}

func makeVideos(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("video"), 0644))
	}
}

func runConvertForTest(t *testing.T, conv *fakeConverter, opts ConvertOptions) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := RunConvertWithDependencies(context.Background(), conv, filesystem.New(), opts, logging.Discard(), &out)
	return out.String(), err
}

func TestRunConvert_SingleFile(t *testing.T) {
	dir := t.TempDir()
	makeVideos(t, dir, "video.mp4")
	conv := &fakeConverter{}

	out, err := runConvertForTest(t, conv, ConvertOptions{
		Input:  filepath.Join(dir, "video.mp4"),
		Output: filepath.Join(dir, "audio.mp3"),
	})
	require.NoError(t, err)

	assert.True(t, conv.verified)
	require.Len(t, conv.jobs, 1)
	assert.Equal(t, audio.FormatMP3, conv.jobs[0].Format)
	assert.Equal(t, audio.DefaultQuality, conv.jobs[0].Quality)
	assert.Contains(t, out, "Successfully created: "+filepath.Join(dir, "audio.mp3"))
	assert.FileExists(t, filepath.Join(dir, "audio.mp3"))
}

func TestRunConvert_SingleFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	conv := &fakeConverter{}

	_, err := runConvertForTest(t, conv, ConvertOptions{
		Input:  filepath.Join(dir, "missing.mp4"),
		Output: filepath.Join(dir, "audio.mp3"),
	})
	assert.ErrorIs(t, err, audio.ErrInputNotFound)
	assert.Empty(t, conv.jobs)
}

func TestRunConvert_SingleFileFailure(t *testing.T) {
	dir := t.TempDir()
	makeVideos(t, dir, "broken.mp4")
	conv := &fakeConverter{failOn: map[string]bool{"broken.mp4": true}}

	_, err := runConvertForTest(t, conv, ConvertOptions{
		Input:  filepath.Join(dir, "broken.mp4"),
		Output: filepath.Join(dir, "broken.mp3"),
	})
	assert.ErrorIs(t, err, audio.ErrConversionFailed)
}

func TestRunConvert_UnsupportedFormatFailsFirst(t *testing.T) {
	conv := &fakeConverter{}

	_, err := runConvertForTest(t, conv, ConvertOptions{
		Input:  "video.mp4",
		Output: "audio.flac",
		Format: "flac",
	})
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)
	assert.False(t, conv.verified, "format must be rejected before ffmpeg is probed")
	assert.Empty(t, conv.jobs)
}

func TestRunConvert_FFmpegMissing(t *testing.T) {
	dir := t.TempDir()
	makeVideos(t, dir, "video.mp4")
	conv := &fakeConverter{verifyErr: errors.New("ffmpeg not found")}

	_, err := runConvertForTest(t, conv, ConvertOptions{
		Input:  filepath.Join(dir, "video.mp4"),
		Output: filepath.Join(dir, "audio.mp3"),
	})
	assert.ErrorContains(t, err, "ffmpeg verification failed")
	assert.Empty(t, conv.jobs)
}

func TestRunConvert_Batch(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "videos")
	outDir := filepath.Join(root, "audio", "wav")
	makeVideos(t, in, "a.mp4", "b.avi", "notes.txt")
	conv := &fakeConverter{}

	out, err := runConvertForTest(t, conv, ConvertOptions{
		Input:  in,
		Output: outDir,
		Format: "wav",
		Batch:  true,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "a.wav"))
	assert.FileExists(t, filepath.Join(outDir, "b.wav"))
	assert.Len(t, conv.jobs, 2)
	assert.Contains(t, out, "Batch complete: 2 converted, 0 failed (2 files)")
}

func TestRunConvert_BatchPartialFailure(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "videos")
	makeVideos(t, in, "a.mp4", "b.mp4", "c.mp4")
	conv := &fakeConverter{failOn: map[string]bool{"b.mp4": true}}

	out, err := runConvertForTest(t, conv, ConvertOptions{
		Input:  in,
		Output: filepath.Join(root, "audio"),
		Batch:  true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBatchIncomplete)
	assert.ErrorContains(t, err, "1 of 3 files failed")

	assert.Len(t, conv.jobs, 3)
	assert.Contains(t, out, "Batch complete: 2 converted, 1 failed (3 files)")
	assert.Contains(t, out, filepath.Join(in, "b.mp4"))
	assert.Contains(t, out, "Invalid data found when processing input")
	assert.FileExists(t, filepath.Join(root, "audio", "a.mp3"))
	assert.FileExists(t, filepath.Join(root, "audio", "c.mp3"))
}

func TestRunConvert_BatchEmpty(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "videos")
	makeVideos(t, in, "readme.md")
	conv := &fakeConverter{}

	out, err := runConvertForTest(t, conv, ConvertOptions{
		Input:  in,
		Output: filepath.Join(root, "audio"),
		Batch:  true,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "No video files found in "+in)
	assert.DirExists(t, filepath.Join(root, "audio"))
}

func TestRunConvert_BatchInputNotDirectory(t *testing.T) {
	dir := t.TempDir()
	makeVideos(t, dir, "video.mp4")
	conv := &fakeConverter{}

	_, err := runConvertForTest(t, conv, ConvertOptions{
		Input:  filepath.Join(dir, "video.mp4"),
		Output: filepath.Join(dir, "audio"),
		Batch:  true,
	})
	assert.ErrorIs(t, err, audio.ErrInputNotFound)
	assert.NoDirExists(t, filepath.Join(dir, "audio"))
}

// recordingRunner captures every ffmpeg invocation and reports success
type recordingRunner struct {
	calls [][]string
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	return nil, nil
}

func (r *recordingRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return []byte("ffmpeg version 6.1.1"), nil
}

func TestRunConvert_BatchDashPrefixedFilename(t *testing.T) {
	dir := t.TempDir()
	makeVideos(t, dir, "-clip.mp4")
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	runner := &recordingRunner{}
	conv := ffmpeg.NewConverter(ffmpeg.WithCommandRunner(runner), ffmpeg.WithLogger(logging.Discard()))

	var out bytes.Buffer
	err := RunConvertWithDependencies(context.Background(), conv, filesystem.New(), ConvertOptions{
		Input:  ".",
		Output: ".",
		Batch:  true,
	}, logging.Discard(), &out)
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	args := runner.calls[0]
	assert.Equal(t, "./-clip.mp3", args[len(args)-1])
	assert.Contains(t, args, "./-clip.mp4")
	assert.NotContains(t, args, "-clip.mp3")
}
