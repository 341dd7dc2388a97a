package processor

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/CodMac/dts-flow/core"
	"github.com/CodMac/dts-flow/parser"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// FileProcessor 并行翻译多个文件。每个文件是一次独立的运行，拥有自己的 Factory 与符号会话。
type FileProcessor struct {
	Language    core.Language
	Concurrency int
	logger      *slog.Logger
}

func NewFileProcessor(lang core.Language, concurrency int, logger *slog.Logger) *FileProcessor {
	if concurrency <= 0 {
		concurrency = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileProcessor{
		Language:    lang,
		Concurrency: concurrency,
		logger:      logger,
	}
}

// ProcessFiles 返回的 GlobalContext 持有所有语法树，用完后需调用 Close
func (fp *FileProcessor) ProcessFiles(ctx context.Context, rootPath string, filePaths []string) (*core.GlobalContext, error) {
	walker, err := core.GetWalker(fp.Language)
	if err != nil {
		return nil, err
	}

	globalContext := core.NewGlobalContext(uuid.NewString())
	absRoot, _ := filepath.Abs(rootPath)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fp.Concurrency)

	for _, path := range filePaths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			relPath, err := filepath.Rel(absRoot, absPath(path))
			if err != nil {
				relPath = path
			}

			fCtx, err := fp.translate(path, relPath, walker, globalContext)
			if err != nil {
				return err
			}
			globalContext.RegisterFileContext(fCtx)
			fp.logger.Debug("file translated", "file", relPath, "run", globalContext.RunID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		globalContext.Close()
		return nil, err
	}
	return globalContext, nil
}

// translate 单个文件：解析 -> 符号会话 -> 新 Factory -> 遍历
func (fp *FileProcessor) translate(path, relPath string, walker core.Walker, gc *core.GlobalContext) (*core.FileContext, error) {
	p, err := parser.NewParser(fp.Language)
	if err != nil {
		return nil, err
	}
	// 语法树要保留到导出结束
	gc.AddCloser(p.Close)

	root, source, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}

	session, err := core.NewSession(fp.Language, root, source)
	if err != nil {
		fp.logger.Warn("symbol session unavailable, namespace names fall back to bare identifiers", "file", relPath, "error", err)
		session = nil
	}

	extractor, err := core.GetMemberExtractor(fp.Language, source)
	if err != nil {
		return nil, err
	}

	fCtx := core.NewFileContext(relPath, root, source, core.NewFactory(extractor, session))
	if err := walker.Walk(fCtx); err != nil {
		return nil, errors.Wrapf(err, "failed to translate: %v", relPath)
	}
	return fCtx, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
