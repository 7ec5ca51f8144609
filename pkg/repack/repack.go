// Package repack downloads published release tarballs and re-archives them per platform.
package repack

import (
	"context"
	"errors"
	"fmt"
	"github.com/stubborn-gaga-0805/cibuild/conf"
	"github.com/stubborn-gaga-0805/cibuild/consts"
	"github.com/stubborn-gaga-0805/cibuild/pkg/archive"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrDownload marks a target whose release tarball could not be fetched. Run skips such targets.
var ErrDownload = errors.New("download failed")

type Repacker struct {
	Client  *http.Client
	Product conf.Product
	// BaseURL replaces the GitHub releases download URL when set.
	BaseURL string
	WorkDir string
}

func New(cfg *conf.App, workDir string) *Repacker {
	return &Repacker{
		Client:  http.DefaultClient,
		Product: cfg.Product,
		BaseURL: cfg.Repackage.BaseURL,
		WorkDir: workDir,
	}
}

func InputFilename(name string, t conf.Target, version string) string {
	return fmt.Sprintf("%s-%s-%s.tar.gz", name, version, t.Triple)
}

func OutputFilename(name string, t conf.Target, version string) string {
	return fmt.Sprintf("%s-%s-%s", name, version, t.PlatformName)
}

func (r *Repacker) RemoteURL(t conf.Target, version string) string {
	if len(r.BaseURL) > 0 {
		return strings.TrimRight(r.BaseURL, "/") + "/" + version + "/" + InputFilename(r.Product.Name, t, version)
	}
	return fmt.Sprintf(consts.GithubDownload, r.Product.Repository, version, r.Product.Name, version, t.Triple)
}

// Process repackages one target and returns the path of the new archive.
func (r *Repacker) Process(ctx context.Context, t conf.Target, version string) (string, error) {
	format, err := archive.ParseFormat(t.Extension)
	if err != nil {
		return "", err
	}
	downloaded, err := r.download(ctx, r.RemoteURL(t, version))
	if err != nil {
		return "", err
	}
	defer os.Remove(downloaded)

	sources, err := os.MkdirTemp("", r.Product.Name)
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(sources)

	if err = archive.ExtractTarGz(downloaded, sources); err != nil {
		return "", fmt.Errorf("extract %s: %w", downloaded, err)
	}
	if t.AddLib {
		src := filepath.Join(r.WorkDir, "lib", t.Triple)
		dst := filepath.Join(sources, r.Product.DisplayName, "lib")
		if err = copyDir(src, dst); err != nil {
			return "", fmt.Errorf("add lib for %s: %w", t.Triple, err)
		}
	}

	out := filepath.Join(r.WorkDir, filepath.FromSlash(consts.PublishDir), version, OutputFilename(r.Product.Name, t, version)) + "." + format.Ext()
	if err = archive.Create(out, sources, format); err != nil {
		return "", err
	}
	return out, nil
}

func (r *Repacker) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDownload, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s: %s", ErrDownload, url, resp.Status)
	}

	f, err := os.CreateTemp("", r.Product.Name+"-*.tar.gz")
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, fs.ModePerm)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
		if err != nil {
			return err
		}
		if _, err = io.Copy(out, in); err != nil {
			_ = out.Close()
			return err
		}
		return out.Close()
	})
}

type Outcome struct {
	Target   conf.Target
	Artifact string
	Skipped  error
}

// Run processes targets in order. Download failures skip the target, any other error stops the run.
func (r *Repacker) Run(ctx context.Context, targets []conf.Target, version string, onDone func(Outcome)) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(targets))
	for _, t := range targets {
		o := Outcome{Target: t}
		artifact, err := r.Process(ctx, t, version)
		switch {
		case errors.Is(err, ErrDownload):
			o.Skipped = err
		case err != nil:
			return outcomes, fmt.Errorf("%s: %w", t.Triple, err)
		default:
			o.Artifact = artifact
		}
		outcomes = append(outcomes, o)
		if onDone != nil {
			onDone(o)
		}
	}
	return outcomes, nil
}
