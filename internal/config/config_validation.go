// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks cross-field rules on the merged config that hold for
// both binaries.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RetryCount < 0 || cfg.Adapter.Burst < 0 || cfg.Adapter.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: negative retry, burst or rps", ErrInvalidAdapterConfigs)
	}
	if cfg.Server.PageSize < 0 || cfg.Adapter.PageSize < 0 {
		return fmt.Errorf("%w: negative page size", ErrInvalidServerConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.Zone == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.ResyncDelay < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.HTTPAddress == "" || cfg.PageSize <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
