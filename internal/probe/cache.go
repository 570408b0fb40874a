package probe

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Increment when the payload format changes; mismatched entries are misses.
const cacheSchemaVersion uint16 = 1

// Digest identifies one probe configuration: compiler, target, flags and
// snippet, hashed together.
type Digest [sha256.Size]byte

// cachePayload is the on-disk record for one probe result.
type cachePayload struct {
	Schema uint16
	Result bool
}

// Cache memoizes probe results on disk so repeated builds skip the
// compiler entirely. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache initializes a probe-result cache at the standard XDG location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "probes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key hashes everything that can change a probe's outcome. compilerID must
// pin the exact compiler build, not just its path; see CompilerID.
func Key(compilerID, target string, flags []string, snippet []byte) Digest {
	h := sha256.New()
	h.Write([]byte(compilerID))
	h.Write([]byte{0})
	h.Write([]byte(target))
	h.Write([]byte{0})
	for _, f := range flags {
		h.Write([]byte(f))
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0})
	h.Write(snippet)
	var d Digest
	h.Sum(d[:0])
	return d
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Get reads a cached result. The second return value reports a hit;
// unreadable or stale entries count as misses.
func (c *Cache) Get(key Digest) (bool, bool) {
	if c == nil {
		return false, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return false, false
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, false
	}
	if payload.Schema != cacheSchemaVersion {
		return false, false
	}
	return payload.Result, true
}

// Put writes a probe result, replacing any previous entry atomically.
func (c *Cache) Put(key Digest, result bool) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(f.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", removeErr)
		}
	}()

	payload := cachePayload{Schema: cacheSchemaVersion, Result: result}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// DropAll invalidates every cached probe result.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(c.dir)
}

// CompilerID returns a string that changes whenever the compiler build
// changes, for use as a cache key component.
func CompilerID(rustc string) (string, error) {
	out, err := exec.Command(rustc, "--version", "--verbose").Output()
	if err != nil {
		return "", fmt.Errorf("failed to query %s version: %w", rustc, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CachedRunner wraps a Runner with the disk cache. A nil Cache degrades to
// the plain runner.
type CachedRunner struct {
	Runner     Runner
	Cache      *Cache
	CompilerID string
	Target     string
	Flags      []string
}

// Check consults the cache before delegating to the wrapped runner.
// Errors from the runner are never cached.
func (cr CachedRunner) Check(snippet []byte) (bool, error) {
	key := Key(cr.CompilerID, cr.Target, cr.Flags, snippet)
	if result, hit := cr.Cache.Get(key); hit {
		return result, nil
	}
	result, err := cr.Runner.Check(snippet)
	if err != nil {
		return false, err
	}
	if putErr := cr.Cache.Put(key, result); putErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to cache probe result: %v\n", putErr)
	}
	return result, nil
}
