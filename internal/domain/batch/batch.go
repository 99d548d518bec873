// Package batch models one uploaded statement file. Batches give every
// transaction a provenance trail and make duplicate re-uploads detectable.
package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Batch identifies a single uploaded statement file.
type Batch struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentHash string    `json:"content_hash"` // hex SHA-256 of the raw upload
	UploadedAt  time.Time `json:"uploaded_at"`
}

// New creates a batch record for an upload.
func New(filename string, content []byte) *Batch {
	sum := sha256.Sum256(content)
	return &Batch{
		ID:          uuid.New(),
		Filename:    filename,
		ContentHash: hex.EncodeToString(sum[:]),
		UploadedAt:  time.Now().UTC(),
	}
}

// ErrDuplicateBatch indicates a byte-identical file was already ingested
type ErrDuplicateBatch struct {
	ExistingID uuid.UUID
	Filename   string
}

func (e ErrDuplicateBatch) Error() string {
	return "file already ingested as batch " + e.ExistingID.String() + ": " + e.Filename
}
