// Package model defines the report types produced by scanning a project
// file for asset references.
//
// A [Report] partitions every unique path referenced by a project into
// resolved [Asset] records and missing paths. The JSON field names are a
// stable wire format shared by the CLI and the HTTP API:
//
//	{
//	  "project_file": "/abs/path/project.aepx",
//	  "assets": [
//	    {"path": "...", "relative_path": "...", "filename": "...",
//	     "extension": "...", "size": 1024}
//	  ],
//	  "missing_assets": ["..."],
//	  "total_size": 1024
//	}
//
// Reports round-trip through [Report.Encode] and [Decode].
package model
