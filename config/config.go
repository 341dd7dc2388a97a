package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLang   = "typescript"
	DefaultFilter = `.*\.d\.ts$`
	DefaultJobs   = 4
	DefaultOutDir = "./output"
	DefaultFormat = "jsonl"
)

// Config 命令行与配置文件共用的选项；命令行显式给出的值覆盖配置文件
type Config struct {
	Lang       string `short:"l" long:"lang" description:"input language (typescript)" yaml:"lang"`
	SourcePath string `short:"p" long:"path" description:"source root" yaml:"path"`
	Filter     string `short:"f" long:"filter" description:"file filter regexp" yaml:"filter"`
	Jobs       int    `short:"j" long:"jobs" description:"number of files translated in parallel" yaml:"jobs"`
	OutDir     string `short:"o" long:"out-dir" description:"output directory" yaml:"outDir"`
	Format     string `long:"format" description:"output format: jsonl, mermaid, sqlite" yaml:"format"`
	Verbose    bool   `short:"v" long:"verbose" description:"debug logging" yaml:"verbose"`
	ConfigFile string `short:"c" long:"config" description:"yaml config file" yaml:"-"`
}

// Parse 解析命令行；给出 --config 时先加载文件再叠加命令行的值
func Parse(args []string) (*Config, error) {
	cli := &Config{}
	if _, err := flags.ParseArgs(cli, args); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if cli.ConfigFile != "" {
		loaded, err := Load(cli.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		cfg.ConfigFile = cli.ConfigFile
	}
	cfg.Merge(cli)
	cfg.Init()
	return cfg, cfg.Validate()
}

// IsHelp 判断 Parse 返回的错误是否只是 --help
func IsHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config: %v", path)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config: %v", path)
	}
	return cfg, nil
}

// Merge 用 override 中的非零值覆盖当前值
func (c *Config) Merge(override *Config) {
	if override == nil {
		return
	}
	if override.Lang != "" {
		c.Lang = override.Lang
	}
	if override.SourcePath != "" {
		c.SourcePath = override.SourcePath
	}
	if override.Filter != "" {
		c.Filter = override.Filter
	}
	if override.Jobs != 0 {
		c.Jobs = override.Jobs
	}
	if override.OutDir != "" {
		c.OutDir = override.OutDir
	}
	if override.Format != "" {
		c.Format = override.Format
	}
	if override.Verbose {
		c.Verbose = true
	}
}

// Init 填充默认值
func (c *Config) Init() {
	if c.Lang == "" {
		c.Lang = DefaultLang
	}
	if c.SourcePath == "" {
		c.SourcePath = "."
	}
	if c.Filter == "" {
		c.Filter = DefaultFilter
	}
	if c.Jobs <= 0 {
		c.Jobs = DefaultJobs
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
}

func (c *Config) Validate() error {
	switch c.Format {
	case "jsonl", "mermaid", "sqlite":
	default:
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if _, err := regexp.Compile(c.Filter); err != nil {
		return errors.Wrapf(err, "invalid filter: %v", c.Filter)
	}
	return nil
}
