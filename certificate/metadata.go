package certificate

// SchemaVersion is the metadata schema written by the current issuance
// revision. Version 1 predates semester marks in the hashed field set;
// version 2 includes them.
const SchemaVersion = 2

// CGPABlock groups the CGPA with the per-semester marks, matching the pinned
// document layout.
type CGPABlock struct {
	CGPA     string   `json:"cgpa"`
	SemMarks SemMarks `json:"semMarks"`
}

// Metadata is the immutable certificate document pinned to content-addressed
// storage. It is built once at issuance and never mutated; the pin assigns it
// a permanent content identifier.
type Metadata struct {
	SchemaVersion            int       `json:"schemaVersion,omitempty"`
	Name                     string    `json:"name"`
	Description              string    `json:"description"`
	Image                    string    `json:"image"`
	StudentName              string    `json:"studentName"`
	RegistrationNumber       string    `json:"registrationNumber"`
	Course                   string    `json:"course"`
	InstitutionName          string    `json:"institutionName"`
	InstitutionWalletAddress string    `json:"institutionWalletAddress"`
	CGPA                     CGPABlock `json:"cgpa"`
	CertificateHash          string    `json:"certificateHash"`
}

// Normalize applies versioned-schema defaults to a fetched document.
// Documents without an explicit version are treated as version 1.
func (m *Metadata) Normalize() {
	if m.SchemaVersion == 0 {
		m.SchemaVersion = 1
	}
}

// HashInput rebuilds the canonical hash field subset for this document's
// schema version. Version 1 documents exclude semester marks from the hash.
func (m *Metadata) HashInput() HashFields {
	f := HashFields{
		StudentName:        m.StudentName,
		RegistrationNumber: m.RegistrationNumber,
		Course:             m.Course,
		CGPA:               m.CGPA.CGPA,
	}
	if m.SchemaVersion >= 2 {
		marks := m.CGPA.SemMarks
		f.SemMarks = &marks
	}
	return f
}
