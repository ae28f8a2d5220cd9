package export

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ExportAll resolves and writes snapshots for every triple concurrently.
// Triples are deduplicated and written in deterministic file order; the
// returned paths are sorted. jobs <= 0 means one worker per CPU.
func ExportAll(ctx context.Context, dir string, triples []string, jobs int) ([]string, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	seen := make(map[string]bool, len(triples))
	unique := make([]string, 0, len(triples))
	for _, t := range triples {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		unique = append(unique, t)
	}
	sort.Strings(unique)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	paths := make([]string, len(unique))
	for i, triple := range unique {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			facts, err := Resolve(triple)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", triple, err)
			}
			path := FileName(dir, triple)
			if err := Write(path, Capture(facts)); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
