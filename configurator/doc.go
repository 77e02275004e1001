// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package configurator builds loggers from a level, stream formats and level names.
//
// Std writes through log/slog and Backend through hclog, logrus or zerolog adapters.
// The other configurators decorate a LevelConfigurator and decide its level: Supplier
// from a function, List from a list of candidates, EnvList from environment variables,
// VQSep and VQComm from verbosity and quietness keys. Decorators can be stacked:
//
//	std, _ := configurator.NewStd(configurator.WithLevel("INFO"))
//	envs := configurator.NewAllEnvList([]string{"APP_LOG"}, std)
//	log, _ := envs.Configure("app")
package configurator
