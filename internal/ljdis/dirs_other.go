// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

//go:build !unix

package ljdis

import "os"

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir
}
