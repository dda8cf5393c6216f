// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

//go:build unix

package ljdis

import "go4.org/xdgdir"

func configDir() string {
	return xdgdir.Config.Path()
}
