package pkgutil

import (
	"errors"
	"os"

	"golang.org/x/tools/go/packages"
)

// LoadMode includes everything needed to build SSA for the loaded packages.
// Should be equivalent to packages.LoadAllSyntax (which is deprecated).
const LoadMode = packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedTypes |
	packages.NeedTypesSizes | packages.NeedImports | packages.NeedName |
	packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedDeps

// Load loads the packages matching the given patterns, running the go build
// tool in dir (or the working directory if dir is empty).
func Load(dir string, patterns ...string) ([]*packages.Package, error) {
	return LoadWithConfig(&packages.Config{
		Mode:  LoadMode,
		Tests: true,
		Dir:   dir,
	}, patterns...)
}

// LoadSource loads a synthetic main package given as source text. The
// Overlay mechanism allows the go tool to load a non-existent file.
func LoadSource(source string) ([]*packages.Package, error) {
	config := &packages.Config{
		Mode:  LoadMode,
		Tests: false,
		Env:   append(os.Environ(), "GO111MODULE=off", "GOPATH=/fake"),
		Overlay: map[string][]byte{
			"/fake/testpackage/main.go": []byte(source),
		},
	}

	return LoadWithConfig(config, "/fake/testpackage/main.go")
}

func LoadWithConfig(config *packages.Config, patterns ...string) ([]*packages.Package, error) {
	pkgs, err := packages.Load(config, patterns...)
	switch {
	case err != nil:
		return nil, err
	case packages.PrintErrors(pkgs) > 0:
		return pkgs, errors.New("errors encountered while loading packages")
	default:
		return pkgs, nil
	}
}
