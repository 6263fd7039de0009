package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Migration is one versioned schema step. Version follows
// v{major}_{minor}_{patch}; DependsOn names a predecessor version that
// must be applied first, or is empty.
type Migration struct {
	Version   string
	Name      string
	DependsOn string
	UpSQL     []string
	DownSQL   []string
}

func (m Migration) FullName() string {
	return m.Version + "_" + m.Name
}

// Checksum hashes version, name and the up source. Mismatches against
// history are diagnostic only, never fatal.
func (m Migration) Checksum() string {
	h := sha256.New()
	h.Write([]byte(m.Version))
	h.Write([]byte(m.Name))
	h.Write([]byte(strings.Join(m.UpSQL, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}

type version struct {
	major, minor, patch int
}

func parseVersion(v string) (version, error) {
	trimmed := strings.TrimPrefix(v, "v")
	parts := strings.SplitN(trimmed, "_", 3)
	if len(parts) != 3 {
		return version{}, fmt.Errorf("malformed migration version %q", v)
	}

	var (
		out version
		err error
	)
	if out.major, err = strconv.Atoi(parts[0]); err != nil {
		return version{}, fmt.Errorf("malformed migration version %q", v)
	}
	if out.minor, err = strconv.Atoi(parts[1]); err != nil {
		return version{}, fmt.Errorf("malformed migration version %q", v)
	}
	if out.patch, err = strconv.Atoi(parts[2]); err != nil {
		return version{}, fmt.Errorf("malformed migration version %q", v)
	}
	return out, nil
}

func (v version) lessOrEqual(o version) bool {
	if v.major != o.major {
		return v.major < o.major
	}
	if v.minor != o.minor {
		return v.minor < o.minor
	}
	return v.patch <= o.patch
}

// pending selects registered migrations with version ≤ target, not yet
// applied, whose dependency (if any) is applied; ascending version order.
func pending(registered []Migration, applied map[string]bool, target string) ([]Migration, error) {
	targetV, err := parseVersion(target)
	if err != nil {
		return nil, err
	}

	var out []Migration
	for _, m := range registered {
		mv, err := parseVersion(m.Version)
		if err != nil {
			return nil, err
		}
		if !mv.lessOrEqual(targetV) {
			continue
		}
		if applied[m.Version] {
			continue
		}
		if m.DependsOn != "" && !applied[m.DependsOn] {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		a, _ := parseVersion(out[i].Version)
		b, _ := parseVersion(out[j].Version)
		return a.lessOrEqual(b) && out[i].Version != out[j].Version
	})
	return out, nil
}
