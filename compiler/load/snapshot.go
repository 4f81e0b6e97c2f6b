package load

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion is bumped whenever the encoded layout changes.
const snapshotVersion = 1

// snapshot is the encoded form of a Catalog.
type snapshot struct {
	Version int      `msgpack:"version"`
	Tables  []*Table `msgpack:"tables"`
}

// WriteSnapshot encodes the catalog to w, so that resolution can later run
// without a database connection.
func WriteSnapshot(w io.Writer, c *Catalog) error {
	if err := msgpack.NewEncoder(w).Encode(&snapshot{Version: snapshotVersion, Tables: c.Tables()}); err != nil {
		return fmt.Errorf("load: encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a catalog written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Catalog, error) {
	var s snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("load: decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("load: unsupported snapshot version %d", s.Version)
	}
	return NewCatalog(s.Tables...)
}
