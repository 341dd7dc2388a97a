package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/CodMac/dts-flow/config"
	"github.com/CodMac/dts-flow/core"
	"github.com/CodMac/dts-flow/output"
	"github.com/CodMac/dts-flow/processor"
	_ "github.com/CodMac/dts-flow/x/typescript"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		if config.IsHelp(err) {
			os.Exit(0)
		}
		exitWithError("参数错误", err)
	}
	if err := run(context.Background(), cfg); err != nil {
		exitWithError("执行失败", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()
	tty := isTerminal(os.Stderr)

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// 1. 扫描文件
	step(tty, "[1/4] 🔍", "正在扫描目录: %s", cfg.SourcePath)
	files, size, err := scanFiles(cfg.SourcePath, cfg.Filter)
	if err != nil {
		return fmt.Errorf("扫描文件失败: %w", err)
	}
	fmt.Fprintf(os.Stderr, "    找到 %d 个候选文件 (%s)\n", len(files), humanize.Bytes(uint64(size)))

	// 2. 每个文件独立翻译
	step(tty, "[2/4] ⚙️ ", "正在翻译声明 (jobs: %d)...", cfg.Jobs)
	proc := processor.NewFileProcessor(core.Language(cfg.Lang), cfg.Jobs, logger)
	gCtx, err := proc.ProcessFiles(ctx, cfg.SourcePath, files)
	if err != nil {
		return fmt.Errorf("翻译失败: %w", err)
	}
	defer gCtx.Close()

	// 3. 导出
	step(tty, "[3/4] 💾", "正在写入结果文件...")
	outType := output.EffectiveType(output.OutType(cfg.Format), gCtx)
	if string(outType) != cfg.Format {
		fmt.Fprintf(os.Stderr, "    规模过大，Mermaid 渲染可能失败，自动降级为 %s\n", outType)
	}
	nc, rc, err := output.NewExporter(cfg.OutDir, outType).Export(ctx, gCtx)
	if err != nil {
		return fmt.Errorf("导出失败: %w", err)
	}

	stats := gCtx.Stats()
	fmt.Fprintf(os.Stderr, "    完成: 节点=%d, 关系=%d, 模块=%d, 合并声明=%d, 函数重载=%d (run %s)\n",
		nc, rc, stats.Modules, stats.Declarations, stats.Functions, gCtx.RunID)
	step(tty, "\n[4/4] ✨", "翻译结束! 总耗时: %v", time.Since(startTime).Round(time.Millisecond))
	return nil
}

func scanFiles(root, filter string) ([]string, int64, error) {
	re, err := regexp.Compile(filter)
	if err != nil {
		return nil, 0, err
	}

	var files []string
	var size int64
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && re.MatchString(path) {
			files = append(files, path)
			size += info.Size()
		}
		return nil
	})
	return files, size, err
}

// step 非终端输出时去掉 emoji
func step(tty bool, tag, format string, args ...interface{}) {
	if !tty {
		tag = stripEmoji.ReplaceAllString(tag, "")
	}
	fmt.Fprintf(os.Stderr, tag+" "+format+"\n", args...)
}

var stripEmoji = regexp.MustCompile(`[^\x00-\x7F]+\s*`)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func exitWithError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}
