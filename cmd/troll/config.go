package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"troll/interpreter-go/pkg/diagnostics"
	"troll/interpreter-go/pkg/driver"
)

type manifestError struct {
	err error
}

func (e *manifestError) Error() string { return e.err.Error() }
func (e *manifestError) Unwrap() error { return e.err }

func isManifestError(err error) bool {
	var target *manifestError
	return errors.As(err, &target)
}

// loadManifest returns the manifest named by --config, or the nearest
// troll.yml at or above dir. A missing manifest is not an error.
func loadManifest(ctx *cli.Context, dir string) (*driver.Manifest, error) {
	path := ctx.GlobalString(configFlag.Name)
	if path == "" {
		found, err := driver.FindManifest(dir)
		if err != nil {
			return nil, &manifestError{err: err}
		}
		if found == "" {
			return nil, nil
		}
		path = found
	}
	manifest, err := driver.LoadManifest(path)
	if err != nil {
		return nil, &manifestError{err: err}
	}
	return manifest, nil
}

// resolveScript maps the optional command line argument to a script path.
// With no argument the manifest entry is used; an argument naming a manifest
// script wins over a file of the same name.
func resolveScript(ctx *cli.Context, wd, arg string) (string, *driver.Manifest, error) {
	manifest, err := loadManifest(ctx, wd)
	if err != nil {
		return "", nil, err
	}

	if arg == "" {
		if manifest == nil {
			return "", nil, fmt.Errorf("no script given and no %s found", driver.ManifestName)
		}
		if entry := manifest.EntryPath(); entry != "" {
			return entry, manifest, nil
		}
		if len(manifest.ScriptOrder) > 0 {
			return "", nil, fmt.Errorf("%s has no entry; pick a script: %s", manifest.Path, strings.Join(manifest.ScriptOrder, ", "))
		}
		return "", nil, fmt.Errorf("no script given and %s has no entry", manifest.Path)
	}

	if manifest != nil {
		if path, ok := manifest.ResolveScript(arg); ok {
			return path, manifest, nil
		}
	}

	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(wd, path)
	}
	if ctx.GlobalString(configFlag.Name) == "" {
		// The script's own project wins over the one around the working directory.
		manifest, err = loadManifest(ctx, filepath.Dir(path))
		if err != nil {
			return "", nil, err
		}
	}
	return path, manifest, nil
}

// newSession applies flag, environment and manifest settings in that order of
// precedence.
func (t *tool) newSession(ctx *cli.Context, manifest *driver.Manifest) (*driver.Session, error) {
	levelText := ctx.GlobalString(logLevelFlag.Name)
	colorText := ctx.GlobalString(colorFlag.Name)
	maxDepth := 0
	if manifest != nil {
		if levelText == "" {
			levelText = manifest.LogLevel
		}
		if colorText == "" {
			colorText = manifest.Color
		}
		maxDepth = manifest.MaxCallDepth
	}

	level, err := driver.ParseLogLevel(levelText)
	if err != nil {
		return nil, err
	}
	mode, err := diagnostics.ParseColorMode(colorText)
	if err != nil {
		return nil, err
	}
	return driver.NewSession(driver.Options{
		Stdout:       t.stdout,
		Stderr:       t.stderr,
		Color:        mode,
		Logger:       driver.NewLogger(t.stderr, level),
		MaxCallDepth: maxDepth,
	}), nil
}
