// SPDX-License-Identifier: GPL-3.0-or-later

// Package measured is a composable metrics collection library.
//
// Applications assemble a tree of metric groups once at startup: leaf
// families built with NewFamily, pairs joined with Compose, and subtrees
// renamed with Namespaced or Subsystem. Each collection pass walks the
// tree with CollectInto against an Encoding target (see the text package
// for the Prometheus exposition encoder), reading every metric's current
// value without blocking writers.
package measured
