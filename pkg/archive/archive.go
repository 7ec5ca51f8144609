// Package archive writes and reads the release archives.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/stubborn-gaga-0805/cibuild/consts"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type Format string

const (
	Zip   Format = "zip"
	TarGz Format = "tar.gz"
)

var (
	ErrUnknownFormat = errors.New("unknown archive format")
	ErrUnsafePath    = errors.New("archive entry escapes destination")
)

func ParseFormat(ext string) (Format, error) {
	switch Format(strings.TrimPrefix(ext, ".")) {
	case Zip:
		return Zip, nil
	case TarGz:
		return TarGz, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// FormatFor returns the archive format people expect on goos.
func FormatFor(goos string) Format {
	if goos == consts.GOOSWindows || goos == consts.GOOSDarwin {
		return Zip
	}
	return TarGz
}

func (f Format) Ext() string {
	return string(f)
}

// Create writes everything under srcDir into dst. Entry names are relative to srcDir.
// dst is removed again if writing fails.
func Create(dst, srcDir string, format Format) (err error) {
	var write func(io.Writer, string) error
	switch format {
	case Zip:
		write = writeZip
	case TarGz:
		write = writeTarGz
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err = os.MkdirAll(filepath.Dir(dst), fs.ModePerm); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	return write(out, srcDir)
}

func writeZip(w io.Writer, srcDir string) error {
	zw := zip.NewWriter(w)
	err := walk(srcDir, func(path, name string, info fs.FileInfo) error {
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = name
		if info.IsDir() {
			hdr.Name += "/"
			hdr.Method = zip.Store
			hdr.UncompressedSize64 = 0
			_, err = zw.CreateHeader(hdr)
			return err
		}
		hdr.Method = zip.Deflate
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		return copyFile(fw, path)
	})
	if err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

func writeTarGz(w io.Writer, srcDir string) error {
	gw := gzip.NewWriter(w)
	tw := tar.NewWriter(gw)
	err := walk(srcDir, func(path, name string, info fs.FileInfo) error {
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = name
		if info.IsDir() {
			hdr.Name += "/"
		}
		if err = tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		return copyFile(tw, path)
	})
	if err != nil {
		_ = tw.Close()
		_ = gw.Close()
		return err
	}
	if err = tw.Close(); err != nil {
		return err
	}
	return gw.Close()
}

func walk(srcDir string, fn func(path, name string, info fs.FileInfo) error) error {
	return filepath.Walk(srcDir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}
		return fn(path, filepath.ToSlash(rel), info)
	})
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// ExtractTarGz unpacks a gzip tarball into dstDir.
func ExtractTarGz(src, dstDir string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		target, err := safeJoin(dstDir, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err = os.MkdirAll(target, fs.ModePerm); err != nil {
				return err
			}
		case tar.TypeReg:
			if err = os.MkdirAll(filepath.Dir(target), fs.ModePerm); err != nil {
				return err
			}
			if err = writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		}
	}
}

func writeEntry(target string, r io.Reader, perm fs.FileMode) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0o200)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func safeJoin(dstDir, name string) (string, error) {
	target := filepath.Join(dstDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dstDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}
