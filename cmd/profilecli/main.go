package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"profile-parser-go/internal/config"
	"profile-parser-go/internal/logger"
	"profile-parser-go/internal/parser"
	"profile-parser-go/internal/types"

	"github.com/spf13/pflag"
)

// profilecli 对单个PDF执行一次完整解析，结果以JSON输出到stdout
// 日志全部走stderr，方便管道消费
func main() {
	var (
		configPath  string
		rawText     bool
		compact     bool
		logLevel    string
		showVersion bool
	)
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径（可选）")
	pflag.BoolVar(&rawText, "raw-text", false, "结果中附带提取出的原始文本")
	pflag.BoolVar(&compact, "compact", false, "输出紧凑JSON（默认缩进）")
	pflag.StringVar(&logLevel, "log-level", "warn", "日志级别: debug, info, warn, error")
	pflag.BoolVar(&showVersion, "version", false, "打印解析器版本并退出")
	pflag.Parse()

	logger.Init(logger.Config{
		Level:  logLevel,
		Format: "pretty",
		Output: "stderr",
	})

	cfg := loadConfigOrDefault(configPath)

	if showVersion {
		fmt.Println(cfg.ActiveParserVersion)
		return
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "用法: profilecli [选项] <profile.pdf>")
		pflag.PrintDefaults()
		os.Exit(1)
	}
	pdfPath := args[0]

	if !strings.EqualFold(filepath.Ext(pdfPath), ".pdf") {
		logger.Error().Str("path", pdfPath).Msg("仅支持PDF文件")
		os.Exit(1)
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		logger.Error().Err(err).Str("path", pdfPath).Msg("读取PDF文件失败")
		os.Exit(1)
	}

	ctx := context.Background()
	timeout := config.GetDuration(cfg.Parser.ParseTimeout, 30*time.Second)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	textDecoder, err := parser.NewEinoPDFTextExtractor(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("创建PDF提取器失败")
		os.Exit(1)
	}

	p := parser.NewParser(textDecoder,
		parser.WithFragmentDecoder(parser.NewStructuralPDFExtractor()),
		parser.WithStructuralConfig(parser.StructuralConfig{
			KnownOrganizations:  cfg.Parser.KnownOrganizations,
			ExcludedPersonNames: cfg.Parser.ExcludedPersonNames,
			ColumnThreshold:     cfg.Parser.ColumnThreshold,
			LineYDistance:       cfg.Parser.LineYDistance,
		}),
	)

	result, err := p.Parse(ctx, data, types.ParseOptions{IncludeRawText: rawText})
	if err != nil {
		logger.Error().Err(err).Str("path", pdfPath).Msg("解析档案失败")
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		logger.Error().Err(err).Msg("序列化解析结果失败")
		os.Exit(1)
	}
}

// loadConfigOrDefault 有配置文件时加载，没有时使用内置默认值
func loadConfigOrDefault(configPath string) *config.Config {
	if configPath != "" {
		cfg, err := config.LoadConfigFromFileOnly(configPath)
		if err != nil {
			logger.Error().Err(err).Str("path", configPath).Msg("加载配置失败")
			os.Exit(1)
		}
		return cfg
	}
	cfg, err := config.LoadConfig("")
	if err != nil {
		// 找不到配置文件时CLI退回内置默认值
		return config.DefaultConfig()
	}
	return cfg
}
