//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 样式表等默认资源已嵌入 pkg/embedded，移动端无需额外准备资源目录。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.ceilplan -o build/android/ceilplan.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Ceilplan.xcframework -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/rs/zerolog/log"

	"github.com/decker502/ceilplan/pkg/app"
)

func init() {
	// 触屏上第一个触点作为主键，平移和滚轮缩放只能用画布右下角的缩放按钮代替
	cfg := app.Config{}
	app.ConfigureLogging(cfg)

	editor, err := app.NewApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("editor initialization failed")
	}

	mobile.SetGame(editor)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
