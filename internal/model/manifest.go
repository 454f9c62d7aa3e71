package model

import "time"

// ManifestSchemaVersion is the current manifest wire-format version.
// Documents without a schema_version field are treated as version 1.
const ManifestSchemaVersion = 1

// UnclassifiedCategory receives files whose header matched nothing.
const UnclassifiedCategory = "unclassified"

// OperationStatus indicates how far a planned file operation progressed.
type OperationStatus string

// Operation status constants. Every operation is created pending and reaches
// exactly one terminal status before it is appended to the manifest.
const (
	StatusPending   OperationStatus = "pending"
	StatusPlanned   OperationStatus = "planned"
	StatusSimulated OperationStatus = "simulated"
	StatusSuccess   OperationStatus = "success"
	StatusFailed    OperationStatus = "failed"
)

// Operation records one classification decision for one file. Field names
// are a stable wire format consumed by rollback; do not rename them.
type Operation struct {
	OriginalPath string          `json:"original_path"`
	PlannedTo    string          `json:"planned_to"`
	Category     string          `json:"category"`
	Headers      []string        `json:"headers"`
	Status       OperationStatus `json:"status"`
	MovedTo      string          `json:"moved_to,omitempty"`
}

// Manifest is the durable record of one classification run. It is owned by
// a single classifier instance for the duration of the run and persisted
// once at the end.
type Manifest struct {
	SchemaVersion int           `json:"schema_version"`
	SourcePath    string        `json:"source_path"`
	Timestamp     time.Time     `json:"timestamp"`
	Mode          Mode          `json:"mode"`
	Match         MatchStrategy `json:"match"`
	ReportOnly    bool          `json:"report_only"`
	Operations    []Operation   `json:"operations"`
}

// Append adds a terminal operation record to the manifest.
func (m *Manifest) Append(op Operation) {
	m.Operations = append(m.Operations, op)
}

// CountByStatus returns how many operations reached the given status.
func (m *Manifest) CountByStatus(status OperationStatus) int {
	n := 0
	for _, op := range m.Operations {
		if op.Status == status {
			n++
		}
	}
	return n
}
