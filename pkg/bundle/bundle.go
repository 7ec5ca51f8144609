// Package bundle assembles the publish directory of a built release and archives it.
package bundle

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/stubborn-gaga-0805/cibuild/conf"
	"github.com/stubborn-gaga-0805/cibuild/consts"
	"github.com/stubborn-gaga-0805/cibuild/pkg/archive"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrExists = errors.New("publish directory already exists")

type Options struct {
	WorkDir   string
	Product   conf.Product
	Triple    string
	Tag       string
	Commit    string
	GOOS      string
	Overwrite bool
}

type Result struct {
	Dir     string
	Archive string
}

// PublishDir is where Assemble collects the release files.
func PublishDir(opts Options) string {
	return filepath.Join(opts.WorkDir, filepath.FromSlash(consts.PublishDir), opts.Product.DisplayName)
}

func Assemble(opts Options) (res Result, err error) {
	res.Dir = PublishDir(opts)
	if _, err = os.Stat(res.Dir); err == nil {
		if !opts.Overwrite {
			return res, fmt.Errorf("%w: %s", ErrExists, res.Dir)
		}
		if err = os.RemoveAll(res.Dir); err != nil {
			return res, err
		}
	}
	if err = os.MkdirAll(res.Dir, fs.ModePerm); err != nil {
		return res, err
	}
	// a half-built directory would block the next run with ErrExists
	defer func() {
		if err != nil {
			_ = os.RemoveAll(res.Dir)
		}
	}()

	exe, err := findExecutable(opts)
	if err != nil {
		return res, err
	}
	if err = copyFile(exe, filepath.Join(res.Dir, filepath.Base(exe))); err != nil {
		return res, err
	}

	newline := "\n"
	if opts.GOOS == consts.GOOSWindows {
		newline = "\r\n"
	}
	texts := [][2]string{{"README.md", "README.txt"}, {"COPYING.txt", "LICENSE.txt"}}
	for _, t := range texts {
		if err = copyText(filepath.Join(opts.WorkDir, t[0]), filepath.Join(res.Dir, t[1]), newline); err != nil {
			return res, err
		}
	}

	script := debugScript(opts.GOOS)
	if err = copyFile(filepath.Join(opts.WorkDir, script), filepath.Join(res.Dir, script)); err != nil {
		return res, err
	}

	if err = os.WriteFile(filepath.Join(res.Dir, "VERSION.txt"), []byte(VersionContents(opts)), 0o644); err != nil {
		return res, err
	}

	if err = copyIcons(opts.WorkDir, filepath.Join(res.Dir, "icons")); err != nil {
		return res, err
	}

	format := archive.FormatFor(opts.GOOS)
	res.Archive = filepath.Join(opts.WorkDir, filepath.FromSlash(consts.PublishDir), opts.Product.Name+"."+format.Ext())
	if err = archive.Create(res.Archive, res.Dir, format); err != nil {
		return res, err
	}
	return res, nil
}

func VersionContents(opts Options) string {
	return fmt.Sprintf("Version: %s\nFull Version: %s-%s-%s\nCommit: %s\n",
		opts.Tag, opts.Product.Name, opts.Tag, opts.Triple, opts.Commit)
}

func ExecutableName(name, goos string) string {
	if goos == consts.GOOSWindows {
		return name + ".exe"
	}
	return name
}

func debugScript(goos string) string {
	if goos == consts.GOOSWindows {
		return "Debug.bat"
	}
	return "debug.sh"
}

// findExecutable prefers the per-target output directory cargo uses with --target.
func findExecutable(opts Options) (string, error) {
	name := ExecutableName(opts.Product.Name, opts.GOOS)
	candidates := []string{
		filepath.Join(opts.WorkDir, "target", opts.Triple, "release", name),
		filepath.Join(opts.WorkDir, filepath.FromSlash(consts.ReleaseDir), name),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("release executable %s not found", name)
}

func copyIcons(workDir, dst string) error {
	icons, err := filepath.Glob(filepath.Join(workDir, "assets", "icon*"))
	if err != nil {
		return err
	}
	if err = os.MkdirAll(dst, fs.ModePerm); err != nil {
		return err
	}
	for _, icon := range icons {
		if err = copyFile(icon, filepath.Join(dst, filepath.Base(icon))); err != nil {
			return err
		}
	}
	return nil
}

// copyText rewrites line endings to newline.
func copyText(src, dst, newline string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	var b strings.Builder
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		b.WriteString(strings.TrimSuffix(scanner.Text(), "\r"))
		b.WriteString(newline)
	}
	if err = scanner.Err(); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(b.String()), 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
