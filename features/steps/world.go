//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
)

// world holds state shared by every step of one scenario
type world struct {
	workDir string
	output  *bytes.Buffer
	err     error
}

// SharedWorld is reset before each scenario via Before hook
var SharedWorld *world

func getWorld() *world {
	return SharedWorld
}

// path resolves a scenario-relative path inside the scenario's work directory
func (w *world) path(rel string) string {
	return filepath.Join(w.workDir, filepath.FromSlash(rel))
}

func InitializeWorld(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "video2audio-features-")
		if err != nil {
			return c, err
		}
		SharedWorld = &world{
			workDir: dir,
			output:  &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedWorld != nil {
			os.RemoveAll(SharedWorld.workDir)
		}
		SharedWorld = nil
		return c, nil
	})

	ctx.Step(`^the command should succeed$`, theCommandShouldSucceed)
	ctx.Step(`^the command should fail with "([^"]*)"$`, theCommandShouldFailWith)
	ctx.Step(`^the output should contain "([^"]*)"$`, theOutputShouldContain)
	ctx.Step(`^the directory "([^"]*)" should exist$`, theDirectoryShouldExist)
}

func theCommandShouldSucceed() error {
	w := getWorld()
	if w.err != nil {
		return fmt.Errorf("expected success, got error: %v\noutput:\n%s", w.err, w.output.String())
	}
	return nil
}

func theCommandShouldFailWith(text string) error {
	w := getWorld()
	if w.err == nil {
		return fmt.Errorf("expected an error containing %q but got none", text)
	}
	if !strings.Contains(w.err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got: %v", text, w.err)
	}
	return nil
}

func theOutputShouldContain(text string) error {
	w := getWorld()
	if !strings.Contains(w.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, w.output.String())
	}
	return nil
}

func theDirectoryShouldExist(rel string) error {
	w := getWorld()
	info, err := os.Stat(w.path(rel))
	if err != nil {
		return fmt.Errorf("expected directory %q to exist: %v", rel, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("expected %q to be a directory", rel)
	}
	return nil
}
