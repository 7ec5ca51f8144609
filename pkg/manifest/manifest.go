// Package manifest resolves the release version of the project being built.
package manifest

import (
	"errors"
	"fmt"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/spf13/viper"
	"strings"
)

var (
	ErrNoVersion = errors.New("no version found")
	ErrNoTag     = errors.New("HEAD is not tagged")
)

// CargoVersion reads [package] version from a Cargo.toml. Release tags carry
// a "v" prefix, so the result does too.
func CargoVersion(path string) (string, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	version := strings.TrimSpace(v.GetString("package.version"))
	if len(version) == 0 {
		return "", fmt.Errorf("%s: %w", path, ErrNoVersion)
	}
	return withPrefix(version), nil
}

// HeadTag returns the name of a tag pointing at HEAD. Annotated tags are peeled.
func HeadTag(repoDir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	tags, err := repo.Tags()
	if err != nil {
		return "", err
	}
	defer tags.Close()

	var found string
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tag, err := repo.TagObject(hash); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				return nil
			}
			hash = commit.Hash
		}
		if hash == head.Hash() && (len(found) == 0 || ref.Name().Short() < found) {
			found = ref.Name().Short()
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", ErrNoTag
	}
	return found, nil
}

// Resolve picks the version from the explicit argument, then Cargo.toml, then the HEAD tag.
func Resolve(explicit, cargoToml, repoDir string) (string, error) {
	if v := strings.TrimSpace(explicit); len(v) > 0 {
		return v, nil
	}
	if len(cargoToml) > 0 {
		if v, err := CargoVersion(cargoToml); err == nil {
			return v, nil
		}
	}
	if len(repoDir) > 0 {
		if v, err := HeadTag(repoDir); err == nil {
			return v, nil
		}
	}
	return "", ErrNoVersion
}

func withPrefix(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
