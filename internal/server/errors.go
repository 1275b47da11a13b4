// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoHTTPAddress = errors.New("access API: no HTTP address configured")
	errNoHTTPHandler = errors.New("access API: no HTTP handler registered")
	errListen        = errors.New("access API: listen failed")
	errShutdown      = errors.New("access API: graceful shutdown failed")
)
