package main

import (
	"os"

	"url-intel/internal/core/app"
	"url-intel/internal/platform/config"
	"url-intel/internal/platform/logx"
)

func main() {
	cfg := config.ParseFlags()

	logx.SetVerbosity(cfg.Verbosity)
	if cfg.LogFile != "" {
		if err := logx.ConfigureFile(cfg.LogFile); err != nil {
			logx.Errorf("%v", err)
			os.Exit(1)
		}
	}
	logx.Infof("Iniciando url-intel input=%s outdir=%s all=%v scope=%v report=%v metrics=%v",
		cfg.Input, cfg.OutDir, cfg.All, cfg.Scope, cfg.Report, cfg.Metrics)

	if err := app.Run(cfg); err != nil {
		logx.Errorf("%v", err)
		os.Exit(1)
	}
}
