// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package record provides an in-memory OpenGL driver that records the
// state-changing calls it receives.
//
// The driver answers queries (strings, integers, symbol lookups, shader
// and program status) from a Config, so a test or a dry run can model any
// GL implementation, from a GLES 2 phone to a 4.6 compatibility desktop
// profile, without a window or a GPU.
//
//	d := record.New(record.Desktop46())
//	s := glstate.NewState(d, nil)
//	d.Reset()
//	s.ApplyStateSet(ss)
//	for _, c := range d.Calls() {
//	    fmt.Println(c)
//	}
//
// Queries and symbol lookups are not recorded.
package record
