package result

import (
	"encoding/gob"
	"os"
)

// Checkpoint holds state for resuming a conformance run: every image result
// recorded so far, plus which images (by name) are already accounted for so
// a resumed run can skip them.
type Checkpoint struct {
	Results   []ImageResult
	Completed map[string]bool
}

// SaveCheckpoint writes conformance-run state to a file.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint loads conformance-run state from a file.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}
