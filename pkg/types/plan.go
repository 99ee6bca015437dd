// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PlanEntry is one proposed rename within a directory.
type PlanEntry struct {
	// Original is the current base filename.
	Original string `json:"original" yaml:"original"`

	// Proposed is the new base filename.
	Proposed string `json:"proposed" yaml:"proposed"`

	// Date is the date extracted from the document.
	Date Date `json:"date" yaml:"date"`
}

// SkipReason explains why a file is left out of the plan.
type SkipReason string

const (
	SkipNone             SkipReason = ""
	SkipAlreadyFormatted SkipReason = "already formatted"
	SkipNoDate           SkipReason = "no date found"
	SkipUnreadable       SkipReason = "unreadable"
)

// Snapshot identifies a backup directory holding copies of the original files.
type Snapshot struct {
	// Dir is the full path of the backup directory.
	Dir string `json:"dir" yaml:"dir"`

	// CreatedAt is the timestamp encoded in the directory name.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Reused is true when an existing snapshot was kept instead of creating
	// a new one.
	Reused bool `json:"reused" yaml:"reused"`
}
