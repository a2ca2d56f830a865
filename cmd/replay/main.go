// replay 在无界面的编辑会话上回放指针事件脚本，输出网格快照
//
// 用于复现交互问题和回归检查：同一脚本总是得到同样的结果。
//
// 用法：
//
//	go run ./cmd/replay --script session.json [--styles file.yaml] [--verbose]
//	cat session.json | go run ./cmd/replay
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/decker502/ceilplan/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var replayLog zerolog.Logger = log.With().Str("module", "replay").Logger()

func main() {
	scriptPath := flag.String("script", "", "Path to the replay script (default: stdin)")
	stylePath := flag.String("styles", "", "Path to a custom style YAML file")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if err := run(*scriptPath, *stylePath, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptPath, stylePath string, stdin io.Reader, stdout io.Writer) error {
	var (
		data []byte
		err  error
	)
	if scriptPath == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(scriptPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	styles, err := config.LoadStyleTable(stylePath)
	if err != nil {
		return err
	}
	sc, err := ParseScript(data)
	if err != nil {
		return err
	}
	sum, err := Run(sc, styles)
	if err != nil {
		return err
	}

	out, err := sonic.ConfigStd.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	_, err = fmt.Fprintf(stdout, "%s\n", out)
	return err
}
