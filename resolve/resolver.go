/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package resolve turns a raw import specifier plus a referring file's
// Location into a typed, resolved Asset. It owns the ordered search-space
// walk (relative, project root, included directories, node_modules
// ancestors), file- and directory-resolution rules, and package.json main
// file / dependency handling.
package resolve

import (
	"path/filepath"

	"bennypowers.dev/depgraph/fs"
	"bennypowers.dev/depgraph/jsimport"
	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/logging"
	"bennypowers.dev/depgraph/packagejson"
)

// DefaultExtensions is the default set of recognized code extensions,
// probed in this order when a candidate has no extension of its own.
var DefaultExtensions = []string{"js", "jsx", "ts", "tsx"}

// Resolver resolves import specifiers against a project root. Use New to
// construct one, then layer configuration with the WithX methods, each of
// which returns a new Resolver rather than mutating the receiver.
type Resolver struct {
	fs                  fs.FileSystem
	logger              logging.Logger
	resolveRoot         location.Location
	extensions          []string
	includedDirectories []string
	recursive           bool
	pkgCache            *packagejson.MemoryCache
}

// New creates a Resolver rooted at resolveRoot with the default extension
// set, no included directories, and non-recursive node_modules handling.
func New(filesystem fs.FileSystem, resolveRoot location.Location) *Resolver {
	return &Resolver{
		fs:          filesystem,
		logger:      logging.NopLogger{},
		resolveRoot: resolveRoot,
		extensions:  append([]string(nil), DefaultExtensions...),
		pkgCache:    packagejson.NewMemoryCache(),
	}
}

// WithExtensions returns a copy of r configured to recognize exts instead
// of the default extension set.
func (r *Resolver) WithExtensions(exts []string) *Resolver {
	next := *r
	next.extensions = append([]string(nil), exts...)
	return &next
}

// WithIncludedDirectories returns a copy of r that additionally searches
// dirs (subpaths of resolveRoot) for every specifier.
func (r *Resolver) WithIncludedDirectories(dirs []string) *Resolver {
	next := *r
	next.includedDirectories = append([]string(nil), dirs...)
	return &next
}

// WithRecursiveNodeModules returns a copy of r with recursive package
// dependency expansion enabled or disabled.
func (r *Resolver) WithRecursiveNodeModules(recursive bool) *Resolver {
	next := *r
	next.recursive = recursive
	return &next
}

// WithLogger returns a copy of r that reports progress to logger.
func (r *Resolver) WithLogger(logger logging.Logger) *Resolver {
	next := *r
	next.logger = logger
	return &next
}

// ResolveRoot returns the resolver's configured project root.
func (r *Resolver) ResolveRoot() location.Location { return r.resolveRoot }

// RecursiveNodeModules reports whether package dependencies are expanded
// recursively.
func (r *Resolver) RecursiveNodeModules() bool { return r.recursive }

// ResolveDependency resolves one unresolved import found at referring into
// a Dependency, tagging it with the import flavor entry carries.
func (r *Resolver) ResolveDependency(referring location.Location, entry jsimport.Entry) Dependency {
	return Dependency{
		Kind:  dependencyKindFor(entry.Kind),
		Asset: r.resolveSpecifier(referring, entry.Specifier),
	}
}

func dependencyKindFor(k jsimport.Kind) DependencyKind {
	switch k {
	case jsimport.Require:
		return DependencyRequire
	case jsimport.AsyncImport:
		return DependencyAsyncImport
	default: // jsimport.Import and jsimport.ExportFrom share one flavor.
		return DependencyImport
	}
}

// candidateKind distinguishes which resolution rules apply to a generated
// search-space candidate.
type candidateKind int

const (
	candidateRelative candidateKind = iota
	candidateIncluded
	candidateNodeModule
)

// candidate is an unverified path the resolver will attempt to turn into
// an Asset. It is a plain string rather than a location.Location because a
// Location must already exist on disk, and most candidates won't.
type candidate struct {
	path string
	kind candidateKind
}

func (r *Resolver) resolveSpecifier(referring location.Location, specifier string) Asset {
	for _, c := range r.searchSpace(referring, specifier) {
		if asset, ok := r.resolveFile(c); ok {
			return asset
		}
		if asset, ok := r.resolveDirectory(c); ok {
			return asset
		}
	}
	return UnresolvedAsset{Specifier: specifier}
}

// searchSpace generates the ordered candidate list for specifier, per the
// rules in §4.1: an absolute specifier short-circuits to only itself;
// otherwise candidates are generated relative to the referring file, the
// resolve root, each included directory, and every ancestor's node_modules.
func (r *Resolver) searchSpace(referring location.Location, specifier string) []candidate {
	if filepath.IsAbs(specifier) {
		return []candidate{{path: filepath.Clean(specifier), kind: candidateRelative}}
	}

	referringDir := referring
	if info, err := r.fs.Stat(referring.String()); err != nil || !info.IsDir() {
		referringDir = referring.Dir()
	}

	var candidates []candidate
	candidates = append(candidates, candidate{
		path: filepath.Join(referringDir.String(), specifier),
		kind: candidateRelative,
	})
	candidates = append(candidates, candidate{
		path: filepath.Join(r.resolveRoot.String(), specifier),
		kind: candidateRelative,
	})
	for _, dir := range r.includedDirectories {
		candidates = append(candidates, candidate{
			path: filepath.Join(r.resolveRoot.String(), dir, specifier),
			kind: candidateIncluded,
		})
	}

	for dir := referringDir.String(); ; {
		candidates = append(candidates, candidate{
			path: filepath.Join(dir, "node_modules", specifier),
			kind: candidateNodeModule,
		})
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return candidates
}

// resolveFile implements §4.1's file resolution rules for one candidate.
func (r *Resolver) resolveFile(c candidate) (Asset, bool) {
	if info, err := r.fs.Stat(c.path); err == nil && !info.IsDir() {
		if !hasRecognizedExtension(c.path, r.extensions) {
			loc := location.NewUnchecked(c.path)
			return FileAsset{Location_: loc}, true
		}
	}

	for _, ext := range r.extensions {
		withExt := c.path + "." + ext
		info, err := r.fs.Stat(withExt)
		if err != nil || info.IsDir() {
			continue
		}
		loc := location.NewUnchecked(withExt)
		if c.kind != candidateNodeModule {
			return ModuleAsset{Location_: loc}, true
		}
		pkgDir, ok := r.findClosestPackageJSON(filepath.Dir(withExt))
		if !ok {
			continue
		}
		return NodePackageAsset{PackageDirectory: pkgDir, TargetFile: loc}, true
	}

	return nil, false
}

// resolveDirectory implements §4.1's directory resolution rules for one
// candidate.
func (r *Resolver) resolveDirectory(c candidate) (Asset, bool) {
	info, err := r.fs.Stat(c.path)
	if err != nil || !info.IsDir() {
		return nil, false
	}

	if c.kind == candidateNodeModule {
		return r.resolveNodeModuleDirectory(c.path)
	}

	for _, ext := range r.extensions {
		indexPath := filepath.Join(c.path, "index."+ext)
		if info, err := r.fs.Stat(indexPath); err == nil && !info.IsDir() {
			return ModuleAsset{Location_: location.NewUnchecked(indexPath)}, true
		}
	}
	return nil, false
}

func (r *Resolver) resolveNodeModuleDirectory(dir string) (Asset, bool) {
	pkgDirPath, ok := r.findClosestPackageJSONPath(dir)
	if !ok {
		return nil, false
	}
	pkgDir := location.NewUnchecked(pkgDirPath)

	pkg, err := r.readPackageJSON(pkgDir)
	if err != nil {
		return nil, false
	}

	mainFilePath := filepath.Join(pkgDirPath, pkg.MainFile())
	var target string
	if dir != pkgDirPath {
		for _, ext := range r.extensions {
			indexPath := filepath.Join(dir, "index."+ext)
			if info, err := r.fs.Stat(indexPath); err == nil && !info.IsDir() {
				target = indexPath
				break
			}
		}
	}
	if target == "" {
		if info, err := r.fs.Stat(mainFilePath); err == nil && !info.IsDir() {
			target = mainFilePath
		} else {
			target = dir
		}
	}

	return NodePackageAsset{
		PackageDirectory: pkgDir,
		TargetFile:       location.NewUnchecked(target),
	}, true
}

// findClosestPackageJSON walks start and its ancestors looking for a
// package.json, returning the directory containing it.
func (r *Resolver) findClosestPackageJSON(start string) (location.Location, bool) {
	p, ok := r.findClosestPackageJSONPath(start)
	if !ok {
		return location.Location{}, false
	}
	return location.NewUnchecked(p), true
}

func (r *Resolver) findClosestPackageJSONPath(start string) (string, bool) {
	for dir := start; ; {
		if info, err := r.fs.Stat(filepath.Join(dir, "package.json")); err == nil && !info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (r *Resolver) readPackageJSON(dir location.Location) (*packagejson.PackageJSON, error) {
	path := dir.Join("package.json").String()
	return r.pkgCache.GetOrLoad(path, func() (*packagejson.PackageJSON, error) {
		return packagejson.ParseFile(r.fs, path)
	})
}

// BuildPackageModule reads the package.json at packageDirectory and
// produces the NodeModule it describes. When recursive node_modules
// resolution is enabled, each declared dependency is resolved (relative to
// the package directory) into a Dependency tagged DependencyRequire —
// package.json dependencies are CommonJS-style references between
// packages, not syntactic import statements.
func (r *Resolver) BuildPackageModule(packageDirectory location.Location) (*Module, error) {
	pkg, err := r.readPackageJSON(packageDirectory)
	if err != nil {
		return nil, err
	}

	mod := &Module{Location: packageDirectory, Kind: NodeModule}
	if !r.recursive {
		return mod, nil
	}

	entries, err := pkg.Dependencies()
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		specifier := packagejson.DependencySpecifier(entry)
		asset := r.resolveSpecifier(packageDirectory, specifier)
		mod.Dependencies = append(mod.Dependencies, Dependency{Kind: DependencyRequire, Asset: asset})
	}
	return mod, nil
}

func hasRecognizedExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	ext = ext[1:]
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
