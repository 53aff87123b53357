// Package render contains the output sinks for assembled timeline layouts.
//
// The layout model computed by pkg/timeline is plain data; the sinks under
// this package decide how it is serialized:
//
//   - [gantt]: SVG charts and the JSON wire format
//
// [gantt]: github.com/fabwerk/ganttline/pkg/render/gantt
package render
