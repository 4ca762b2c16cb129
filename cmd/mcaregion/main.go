// Command mcaregion is a small example collaborator around the region
// package: it walks a directory of .mca files and reports each chunk's
// state, optionally rewriting every file through a full decode/encode
// write-back pass. Filename parsing, coordinate bookkeeping and anything
// resembling a full world loader stay out of this package by design;
// region and nbt only ever see the bytes handed to them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/mca/region"
)

func main() {
	var (
		dir       string
		rewrite   bool
		workers   int
		verbosity string
	)
	flag.StringVar(&dir, "dir", ".", "directory containing .mca region files")
	flag.BoolVar(&rewrite, "rewrite", false, "re-encode each region file through a write-back pass")
	flag.IntVar(&workers, "workers", 4, "number of region files processed concurrently")
	flag.StringVar(&verbosity, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(verbosity)}))

	paths, err := findRegionFiles(dir)
	if err != nil {
		log.Error("scan directory", "dir", dir, "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		log.Warn("no .mca files found", "dir", dir)
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			return processFile(log, p, rewrite)
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("processing failed", "error", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func findRegionFiles(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".mca") {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// processFile decodes one region file, logs a per-state chunk tally, and
// (if rewrite is set) writes it back through Region.EncodeRegion. Each
// file gets its own *os.File, so concurrent calls from separate
// goroutines never share a Stream — the region package makes no claim
// about concurrent access to a single one.
func processFile(log *slog.Logger, path string, rewrite bool) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	r := region.New(0, 0)
	if err := r.DecodeRegion(f, info.Size()); err != nil {
		if errors.Is(err, region.ErrMissingHeader) {
			log.Warn("skipping short file", "path", path, "size", info.Size())
			return nil
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}

	tally := map[region.State]int{}
	r.Range(func(_, _ int, c *region.Chunk) bool {
		tally[c.State()]++
		return true
	})
	log.Info("decoded region", "path", path,
		"ok", tally[region.StateOk],
		"not_created", tally[region.StateNotCreated],
		"overlapping", tally[region.StateOverlapping],
		"too_big", tally[region.StateTooBig],
		"corrupted", tally[region.StateCorrupted],
	)

	if !rewrite {
		return nil
	}
	if err := r.EncodeRegion(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	log.Info("rewrote region", "path", path)
	return nil
}
