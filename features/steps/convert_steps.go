//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"video2audio/cmd"
	"video2audio/domain/audio"
	"video2audio/infrastructure/ffmpeg"
	"video2audio/infrastructure/filesystem"
	"video2audio/infrastructure/logging"

	"github.com/cucumber/godog"
)

// mockConverter records calls to Convert and writes an empty output file
type mockConverter struct {
	calls     []convertCall
	failOn    map[string]bool
	installed bool
}

type convertCall struct {
	job  audio.ConversionJob
	args []string
}

func (m *mockConverter) Convert(ctx context.Context, job audio.ConversionJob) error {
	m.calls = append(m.calls, convertCall{job: job, args: ffmpeg.BuildArgs(job)})
	if m.failOn[filepath.Base(job.InputPath)] {
		return &audio.ConversionError{
			Job:    job,
			Stderr: "Invalid data found when processing input",
			Err:    errors.New("exit status 1"),
		}
	}
	return os.WriteFile(job.OutputPath, nil, 0644)
}

func (m *mockConverter) VerifyInstalled(ctx context.Context) error {
	if !m.installed {
		return ffmpeg.ErrNotInstalled
	}
	return nil
}

// convertContext holds test state for conversion scenarios
type convertContext struct {
	converter *mockConverter
}

// SharedConvertContext is reset before each scenario via Before hook
var SharedConvertContext *convertContext

func getConvertContext() *convertContext {
	return SharedConvertContext
}

func InitializeConvertScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedConvertContext = &convertContext{
			converter: &mockConverter{failOn: make(map[string]bool)},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedConvertContext = nil
		return c, nil
	})

	ctx.Step(`^ffmpeg is installed$`, ffmpegIsInstalled)
	ctx.Step(`^ffmpeg is not installed$`, ffmpegIsNotInstalled)
	ctx.Step(`^ffmpeg fails for "([^"]*)"$`, ffmpegFailsFor)
	ctx.Step(`^a video file "([^"]*)"$`, aVideoFile)
	ctx.Step(`^a video directory "([^"]*)" containing:$`, aVideoDirectoryContaining)
	ctx.Step(`^I convert "([^"]*)" to "([^"]*)"$`, iConvertTo)
	ctx.Step(`^I convert "([^"]*)" to "([^"]*)" with format "([^"]*)" and quality "([^"]*)"$`, iConvertToWithFormatAndQuality)
	ctx.Step(`^I batch convert "([^"]*)" to "([^"]*)" with format "([^"]*)"$`, iBatchConvertToWithFormat)
	ctx.Step(`^ffmpeg should have been called (\d+) times?$`, ffmpegShouldHaveBeenCalledTimes)
	ctx.Step(`^the output file should be "([^"]*)"$`, theOutputFileShouldBe)
	ctx.Step(`^ffmpeg should have been called with arguments:$`, ffmpegShouldHaveBeenCalledWithArguments)
	ctx.Step(`^the output directory "([^"]*)" should contain:$`, theOutputDirectoryShouldContain)
	ctx.Step(`^the summary should report (\d+) converted and (\d+) failed$`, theSummaryShouldReport)
}

func ffmpegIsInstalled() error {
	getConvertContext().converter.installed = true
	return nil
}

func ffmpegIsNotInstalled() error {
	getConvertContext().converter.installed = false
	return nil
}

func ffmpegFailsFor(name string) error {
	getConvertContext().converter.failOn[name] = true
	return nil
}

func aVideoFile(rel string) error {
	w := getWorld()
	path := w.path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("video"), 0644)
}

func aVideoDirectoryContaining(rel string, table *godog.Table) error {
	w := getWorld()
	dir := w.path(rel)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		if err := os.WriteFile(filepath.Join(dir, row.Cells[0].Value), []byte("video"), 0644); err != nil {
			return err
		}
	}
	return nil
}

func runConvert(opts cmd.ConvertOptions) error {
	w := getWorld()
	c := getConvertContext()
	w.err = cmd.RunConvertWithDependencies(
		context.Background(),
		c.converter,
		filesystem.New(),
		opts,
		logging.Discard(),
		w.output,
	)
	return nil
}

func iConvertTo(input, output string) error {
	w := getWorld()
	return runConvert(cmd.ConvertOptions{
		Input:  w.path(input),
		Output: w.path(output),
	})
}

func iConvertToWithFormatAndQuality(input, output, format, quality string) error {
	w := getWorld()
	return runConvert(cmd.ConvertOptions{
		Input:   w.path(input),
		Output:  w.path(output),
		Format:  format,
		Quality: quality,
	})
}

func iBatchConvertToWithFormat(input, output, format string) error {
	w := getWorld()
	return runConvert(cmd.ConvertOptions{
		Input:  w.path(input),
		Output: w.path(output),
		Format: format,
		Batch:  true,
	})
}

func ffmpegShouldHaveBeenCalledTimes(n int) error {
	c := getConvertContext()
	if len(c.converter.calls) != n {
		return fmt.Errorf("expected ffmpeg to be called %d times, got %d", n, len(c.converter.calls))
	}
	return nil
}

func theOutputFileShouldBe(rel string) error {
	w := getWorld()
	c := getConvertContext()
	if len(c.converter.calls) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}
	got := c.converter.calls[0].job.OutputPath
	if got != w.path(rel) {
		return fmt.Errorf("expected output path %q, got %q", w.path(rel), got)
	}
	return nil
}

func ffmpegShouldHaveBeenCalledWithArguments(table *godog.Table) error {
	c := getConvertContext()
	if len(c.converter.calls) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}

	call := c.converter.calls[0]

	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		expectedArg := row.Cells[0].Value
		found := false
		for _, arg := range call.args {
			if arg == expectedArg {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("expected argument %q not found in ffmpeg call: %v", expectedArg, call.args)
		}
	}
	return nil
}

func theOutputDirectoryShouldContain(rel string, table *godog.Table) error {
	w := getWorld()
	entries, err := os.ReadDir(w.path(rel))
	if err != nil {
		return fmt.Errorf("cannot read output directory %q: %v", rel, err)
	}

	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	var want []string
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		want = append(want, row.Cells[0].Value)
	}
	sort.Strings(got)
	sort.Strings(want)

	if fmt.Sprint(got) != fmt.Sprint(want) {
		return fmt.Errorf("expected %q to contain %v, got %v", rel, want, got)
	}
	return nil
}

var summaryRegex = regexp.MustCompile(`Batch complete: (\d+) converted, (\d+) failed`)

func theSummaryShouldReport(converted, failed int) error {
	w := getWorld()
	m := summaryRegex.FindStringSubmatch(w.output.String())
	if m == nil {
		return fmt.Errorf("no summary found in output:\n%s", w.output.String())
	}
	gotConverted, _ := strconv.Atoi(m[1])
	gotFailed, _ := strconv.Atoi(m[2])
	if gotConverted != converted || gotFailed != failed {
		return fmt.Errorf("expected %d converted and %d failed, got %d and %d", converted, failed, gotConverted, gotFailed)
	}
	return nil
}
