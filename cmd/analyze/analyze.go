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

// Package analyze provides the analyze command: build a dependency graph
// from one or more entry points, optionally augmented with a bundler stats
// report.
package analyze

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"bennypowers.dev/depgraph/fs"
	"bennypowers.dev/depgraph/graph"
	"bennypowers.dev/depgraph/internal/output"
	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/logging"
	"bennypowers.dev/depgraph/modcache"
	"bennypowers.dev/depgraph/resolve"
	"bennypowers.dev/depgraph/webpackreport"
)

// maxConcurrentAnalyses bounds the worker pool for --glob batch mode, the
// one place in the repository that builds more than one Analysis at a time.
const maxConcurrentAnalyses = 8

// Cmd is the analyze command.
var Cmd = &cobra.Command{
	Use:   "analyze [entry]",
	Short: "Build a dependency graph from one or more entry files",
	Long: `Build a dependency graph from an entry file's module imports.

A single entry path prints one JSON analysis. --glob analyzes every
matching file concurrently and prints one JSON object per line (NDJSON).`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("glob", "", "glob pattern (relative to --package) selecting multiple entry points")
	Cmd.Flags().String("stats", "", "path to a webpack stats.json file to augment the graph with chunk membership")
	Cmd.Flags().Bool("recursive", false, "expand node_modules dependencies recursively")
	Cmd.Flags().StringSlice("include", nil, "additional directories (relative to --package) to search when resolving imports")
	_ = viper.BindPFlag("glob", Cmd.Flags().Lookup("glob"))
	_ = viper.BindPFlag("stats", Cmd.Flags().Lookup("stats"))
	_ = viper.BindPFlag("recursive", Cmd.Flags().Lookup("recursive"))
	_ = viper.BindPFlag("include", Cmd.Flags().Lookup("include"))
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := logging.NewStderrLogger()

	root, err := location.New(osfs, viper.GetString("package"))
	if err != nil {
		return fmt.Errorf("resolving package root: %w", err)
	}

	resolver := resolve.New(osfs, root).
		WithRecursiveNodeModules(viper.GetBool("recursive")).
		WithIncludedDirectories(viper.GetStringSlice("include")).
		WithLogger(logger)

	if glob := viper.GetString("glob"); glob != "" {
		return runBatch(osfs, resolver, logger, root, glob)
	}

	if len(args) != 1 {
		return fmt.Errorf("analyze requires exactly one entry path, or --glob for batch mode")
	}
	entry, err := location.New(osfs, args[0])
	if err != nil {
		return fmt.Errorf("resolving entry %q: %w", args[0], err)
	}

	summary, err := analyzeOne(osfs, resolver, logger, root, entry)
	if err != nil {
		return err
	}
	return output.JSON(summary)
}

// runBatch expands pattern against root and analyzes every match
// concurrently, bounded by maxConcurrentAnalyses, mirroring the CLI-level
// fan-out the rest of the analyzer deliberately avoids internally — each
// per-entry build below is still single-threaded.
func runBatch(osfs fs.FileSystem, resolver *resolve.Resolver, logger logging.Logger, root location.Location, pattern string) error {
	matches, err := doublestar.Glob(os.DirFS(root.String()), pattern)
	if err != nil {
		return fmt.Errorf("expanding glob %q: %w", pattern, err)
	}

	results := make([]any, len(matches))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(maxConcurrentAnalyses)

	for i, match := range matches {
		i, match := i, match
		g.Go(func() error {
			entry, err := location.New(osfs, root.Join(match).String())
			if err != nil {
				results[i] = map[string]string{"entry": match, "error": err.Error()}
				return nil
			}
			summary, err := analyzeOne(osfs, resolver, logger, root, entry)
			if err != nil {
				results[i] = map[string]string{"entry": match, "error": err.Error()}
				return nil
			}
			results[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return output.NDJSON(results)
}

func analyzeOne(osfs fs.FileSystem, resolver *resolve.Resolver, logger logging.Logger, root, entry location.Location) (graph.Summary, error) {
	cache, err := modcache.NewBuilder(osfs, resolver).WithLogger(logger).Build(entry)
	if err != nil {
		return graph.Summary{}, fmt.Errorf("building module cache for %s: %w", entry, err)
	}

	analysis, err := graph.CreateFromCache(osfs, resolver, cache, entry, logger)
	if err != nil {
		return graph.Summary{}, fmt.Errorf("building analysis graph for %s: %w", entry, err)
	}

	if statsPath := viper.GetString("stats"); statsPath != "" {
		data, err := osfs.ReadFile(statsPath)
		if err != nil {
			return graph.Summary{}, fmt.Errorf("reading stats file %s: %w", statsPath, err)
		}
		report, err := webpackreport.Parse(osfs, root, logger, data)
		if err != nil {
			return graph.Summary{}, fmt.Errorf("parsing stats file %s: %w", statsPath, err)
		}
		if err := analysis.AugmentWithWebpackReport(report, 0); err != nil {
			return graph.Summary{}, fmt.Errorf("augmenting %s with stats: %w", entry, err)
		}
	}

	return analysis.Summarize(), nil
}
