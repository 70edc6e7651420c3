// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build gl

package gogl

import (
	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/backend"
)

func init() {
	backend.Register(backend.DriverGL, func() (glstate.Driver, func(), error) {
		win, err := NewWindow(WindowConfig{Hidden: true})
		if err != nil {
			return nil, nil, err
		}
		return win.Driver(), win.Destroy, nil
	})
}
