// Package pkg provides the core libraries for neuroreport HTML report generation.
//
// # Overview
//
// Neuroreport turns a directory of neuroimaging artifacts into one
// self-contained HTML document. The pkg directory is organized by pipeline
// stage:
//
//  1. [artifact] - Filename classification and directory scanning
//  2. [readers] - Collaborator interfaces for scientific file formats
//  3. [volume] / [plot] - Volumetric slicing and raster plotting
//  4. [render/html] - Fragments, sliders, TOC, and document assembly
//  5. [report] - Orchestration: scan, dispatch, compose, save
//
// # Architecture
//
// The typical data flow through a report run:
//
//	Data directory
//	         ↓
//	    [artifact] package (classify by suffix cascade)
//	         ↓
//	    [readers] + [plot] packages (decode shapes, rasterize)
//	         ↓
//	    [render/html] package (fragments + TOC + ids)
//	         ↓
//	    report.html output
//
// # Quick Start
//
// Generate a report over a scanned directory:
//
//	import (
//	    "context"
//	    "neuroreport/pkg/report"
//	)
//
//	rep := report.New(report.Options{InfoPath: "sample_raw.fif"}, readers, nil, nil, nil)
//	if err := rep.Generate(context.Background(), "./MEG/sample"); err != nil {
//	    // configuration-level failure
//	}
//	path, _ := rep.Save()
//
// Supporting infrastructure: [cache] stores rendered fragment images between
// runs (file, redis, or null backends), [workdir] manages the scratch
// directory, [observability] exposes optional instrumentation hooks, and
// [errors] defines the typed error codes shared across packages.
//
// [artifact]: neuroreport/pkg/artifact
// [readers]: neuroreport/pkg/readers
// [volume]: neuroreport/pkg/volume
// [plot]: neuroreport/pkg/plot
// [render/html]: neuroreport/pkg/render/html
// [report]: neuroreport/pkg/report
// [cache]: neuroreport/pkg/cache
// [workdir]: neuroreport/pkg/workdir
// [observability]: neuroreport/pkg/observability
// [errors]: neuroreport/pkg/errors
package pkg
