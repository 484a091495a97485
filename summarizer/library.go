package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// IngestLibrary embeds the abstract-to-conclusion section of every PDF in dir
// into the library collection. Files that are too small or unreadable are
// skipped. It returns the number of chunks added.
func (s *Service) IngestLibrary(ctx context.Context, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return 0, fmt.Errorf("error listing %s: %w", dir, err)
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.Size() <= s.cfg.MinLibraryFileSize {
			logger.Info("Skipping library file", zap.String("file", filepath.Base(path)))
			continue
		}
		files = append(files, path)
	}
	logger.Info("Ingesting library", zap.String("dir", dir), zap.Int("files", len(files)), zap.Int("found", len(paths)))

	var added atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.IngestConcurrency)

	for _, path := range files {
		g.Go(func() error {
			n, err := s.ingestFile(gctx, path)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Error("Failed to ingest library file", zap.String("file", path), zap.Error(err))
				return nil
			}
			added.Add(int64(n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(added.Load()), err
	}

	logger.Info("Library ingested", zap.Int64("chunks", added.Load()), zap.Int("total", s.index.Library().Count()))
	return int(added.Load()), nil
}

func (s *Service) ingestFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	text, err := pdfExtractor(data)
	if err != nil {
		return 0, err
	}

	section, ok := RelevantSection(text)
	if !ok {
		return 0, fmt.Errorf("no abstract to conclusion section found")
	}

	chunks := ChunkText(section, s.cfg.IndexChunkSize, s.cfg.IndexChunkOverlap)
	vectors, err := s.embedder.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("error embedding library file: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("expected %d embeddings, got %d", len(chunks), len(vectors))
	}

	s.index.Library().Add(chunks, vectors)
	return len(chunks), nil
}
