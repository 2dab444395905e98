package openft

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ManifestName is the file every package must have at its root
const ManifestName = "plugin.xml"

// EnumeratePackages returns the immediate sub directories of `root`, each
// of which may be a package.
func EnumeratePackages(root string) ([]string, error) {
	infos, err := ioutil.ReadDir(root)
	if err != nil {
		return nil, err
	}

	dirs := []string{}
	for _, info := range infos {
		if info.IsDir() {
			dirs = append(dirs, filepath.Join(root, info.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// LoadPackage reads & parses the manifest of a single package directory.
func LoadPackage(dir string) (*Package, error) {
	data, err := ioutil.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	return ParsePackage(dir, data)
}

// LoadPackages loads every package in `dirs`, parsing up to `workers` at
// once. Packages that fail to load are logged & left out; the rest are
// returned in the order of `dirs`.
func LoadPackages(ctx context.Context, dirs []string, workers int) ([]*Package, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*Package, len(dirs))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	for i, dir := range dirs {
		i, dir := i, dir
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			pkg, err := LoadPackage(dir)
			if os.IsNotExist(err) {
				warnf("plugin %s does not have a %s", dir, ManifestName)
				return nil
			}
			if err != nil {
				errorf("%v", err)
				return nil
			}
			results[i] = pkg
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	pkgs := []*Package{}
	for _, p := range results {
		if p != nil {
			pkgs = append(pkgs, p)
		}
	}
	return pkgs, nil
}

// LoadPluginRoot enumerates & loads every package under `root`
func LoadPluginRoot(ctx context.Context, root string, workers int) ([]*Package, error) {
	dirs, err := EnumeratePackages(root)
	if err != nil {
		return nil, err
	}
	return LoadPackages(ctx, dirs, workers)
}
