package gantt

import (
	"encoding/json"

	"github.com/fabwerk/ganttline/pkg/timeline"
)

// MarshalLayout encodes the layout model as indented JSON. This is the
// wire shape of the HTTP API and the `render --format json` output.
func MarshalLayout(l timeline.Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout decodes a layout previously produced by MarshalLayout.
func UnmarshalLayout(data []byte) (timeline.Layout, error) {
	var l timeline.Layout
	err := json.Unmarshal(data, &l)
	return l, err
}
