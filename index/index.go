// Package index locates NoDL documents installed in ament packages.
//
// A package installed under a prefix is registered by a marker file
// at <prefix>/share/ament_index/resource_index/packages/<package>,
// and its installed data lives under <prefix>/share/<package>. NoDL
// documents are any files below that directory named *.nodl.xml.
package index

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/andaru/nodl"
	"github.com/andaru/nodl/nodlerr"
	"github.com/andaru/nodl/types"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	// FileExtension is the double extension of NoDL documents.
	FileExtension = ".nodl.xml"
	// PrefixPathEnv lists the install prefixes searched for packages.
	PrefixPathEnv = "AMENT_PREFIX_PATH"

	packageMarkers = "share/ament_index/resource_index/packages"
)

// Index searches install prefixes for packages, earlier prefixes first.
type Index struct {
	Prefixes []string
}

// New returns an Index searching prefixes.
func New(prefixes ...string) *Index { return &Index{Prefixes: prefixes} }

// FromEnvironment returns an Index over the prefixes listed in
// AMENT_PREFIX_PATH.
func FromEnvironment() *Index { return New(SplitPrefixPath(os.Getenv(PrefixPathEnv))...) }

// SplitPrefixPath splits a prefix path list, dropping empty entries.
func SplitPrefixPath(list string) []string {
	var out []string
	for _, p := range filepath.SplitList(list) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FindFiles returns every regular file below root whose name ends in
// FileExtension, sorted.
func FindFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), FileExtension) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	slices.Sort(files)
	glog.V(2).Infof("found %d NoDL files below %s", len(files), root)
	return files, nil
}

// ShareDirectory returns the share directory of pkg in the first
// prefix registering it.
func (ix *Index) ShareDirectory(pkg string) (string, error) {
	if pkg == "" || strings.ContainsRune(pkg, '/') || strings.ContainsRune(pkg, filepath.Separator) {
		return "", errors.WithStack(nodlerr.PackageNotFound(pkg))
	}
	for _, prefix := range ix.Prefixes {
		marker := filepath.Join(prefix, filepath.FromSlash(packageMarkers), pkg)
		if _, err := os.Stat(marker); err == nil {
			share := filepath.Join(prefix, "share", pkg)
			glog.V(1).Infof("package %s found at %s", pkg, share)
			return share, nil
		}
	}
	return "", errors.WithStack(nodlerr.PackageNotFound(pkg))
}

// Files returns the NoDL documents installed by pkg.
func (ix *Index) Files(pkg string) ([]string, error) {
	share, err := ix.ShareDirectory(pkg)
	if err != nil {
		return nil, err
	}
	files, err := FindFiles(share)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.WithStack(nodlerr.NoNoDLFiles(pkg))
	}
	return files, nil
}

// Nodes parses and merges every NoDL document installed by pkg.
func (ix *Index) Nodes(pkg string) ([]types.Node, error) {
	files, err := ix.Files(pkg)
	if err != nil {
		return nil, err
	}
	return nodl.ParseMultiple(files...)
}

// NodeByExecutable returns the node of pkg associated with executable.
func (ix *Index) NodeByExecutable(pkg, executable string) (types.Node, error) {
	nodes, err := ix.Nodes(pkg)
	if err != nil {
		return types.Node{}, err
	}
	for _, n := range nodes {
		if n.Executable == executable {
			return n, nil
		}
	}
	return types.Node{}, errors.WithStack(nodlerr.ExecutableNotFound(pkg, executable))
}

// NodesByExecutables returns the nodes of pkg associated with any of
// executables, in document order, and the executables matching no
// node, in argument order.
func (ix *Index) NodesByExecutables(pkg string, executables []string) (found []types.Node, missing []string, err error) {
	nodes, err := ix.Nodes(pkg)
	if err != nil {
		return nil, nil, err
	}
	matched := map[string]bool{}
	for _, n := range nodes {
		if slices.Contains(executables, n.Executable) {
			found = append(found, n)
			matched[n.Executable] = true
		}
	}
	for _, exe := range executables {
		if !matched[exe] && !slices.Contains(missing, exe) {
			missing = append(missing, exe)
		}
	}
	return found, missing, nil
}
