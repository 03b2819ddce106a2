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
package modcache

import (
	"bennypowers.dev/depgraph/fs"
	"bennypowers.dev/depgraph/jsimport"
	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/logging"
	"bennypowers.dev/depgraph/resolve"
)

// Builder walks one or more entry points depth-first, parsing each module's
// source for imports, resolving each import to an Asset, and recursing into
// any Asset that names a further module to parse.
type Builder struct {
	fs       fs.FileSystem
	resolver *resolve.Resolver
	logger   logging.Logger
	cache    *Cache
}

// NewBuilder returns a Builder that reads source files through filesystem
// and resolves specifiers with resolver.
func NewBuilder(filesystem fs.FileSystem, resolver *resolve.Resolver) *Builder {
	return &Builder{fs: filesystem, resolver: resolver, logger: logging.NopLogger{}}
}

// WithLogger returns a copy of b that reports progress to logger.
func (b *Builder) WithLogger(logger logging.Logger) *Builder {
	next := *b
	next.logger = logger
	return &next
}

// Build parses and resolves every module reachable from entryPoints,
// depth-first. A parsing or filesystem error aborts the walk immediately,
// but the Cache built so far is still returned alongside the error — a
// partial cache is more useful to a caller than none at all.
func (b *Builder) Build(entryPoints ...location.Location) (*Cache, error) {
	b.cache = New()
	for _, entry := range entryPoints {
		if err := b.buildModule(entry); err != nil {
			return b.cache, err
		}
	}
	return b.cache, nil
}

func (b *Builder) buildModule(loc location.Location) error {
	if b.cache.Has(loc) {
		return nil
	}

	source, err := b.fs.ReadFile(loc.String())
	if err != nil {
		return err
	}

	mod := &resolve.Module{Location: loc, Kind: resolve.NormalModule}
	// Insert before recursing: a dependency cycle back to loc will see it
	// already cached and stop, rather than re-parsing forever.
	b.cache.Set(loc, mod)

	for _, entry := range jsimport.ParseMany(string(source)) {
		dep := b.resolver.ResolveDependency(loc, entry)
		mod.Dependencies = append(mod.Dependencies, dep)
		if err := b.followAsset(dep.Asset); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) followAsset(asset resolve.Asset) error {
	switch a := asset.(type) {
	case resolve.ModuleAsset:
		return b.buildModule(a.Location_)
	case resolve.NodePackageAsset:
		return b.buildPackage(a)
	default:
		// FileAsset and UnresolvedAsset are terminal: nothing further to parse.
		return nil
	}
}

func (b *Builder) buildPackage(a resolve.NodePackageAsset) error {
	if b.cache.Has(a.TargetFile) {
		return nil
	}

	mod, err := b.resolver.BuildPackageModule(a.PackageDirectory)
	if err != nil {
		return err
	}

	b.cache.Set(a.TargetFile, mod)
	if !b.cache.Has(a.PackageDirectory) {
		b.cache.Set(a.PackageDirectory, mod)
	}

	for _, dep := range mod.Dependencies {
		if err := b.followAsset(dep.Asset); err != nil {
			return err
		}
	}
	return nil
}
