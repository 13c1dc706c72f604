package registry

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/funvibe/shapetypes/internal/typesystem"
)

// Store is a persistent cache of declared signatures, keyed by function
// name. Types are stored as their canonical strings: the stringifier is
// stable, so a reload can recompile and cross-check against the live
// registry with Equivalent.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS signatures (
	name       TEXT NOT NULL,
	slot       INTEGER NOT NULL,
	param_name TEXT NOT NULL DEFAULT '',
	type_text  TEXT NOT NULL,
	optional   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (name, slot)
);
`

// slot -1 holds the return type; slots 0.. hold parameters in order.
const returnSlot = -1

// OpenStore opens (creating if needed) a signature cache at path.
// Use ":memory:" for an ephemeral store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save writes every signature of r, replacing the previous contents.
func (s *Store) Save(r *Registry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM signatures`); err != nil {
		return err
	}

	insert, err := tx.Prepare(`INSERT INTO signatures (name, slot, param_name, type_text, optional) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insert.Close()

	for _, name := range r.Names() {
		sig, ok := r.Lookup(name)
		if !ok {
			continue
		}
		for i, p := range sig.Params {
			optional := 0
			if p.Optional {
				optional = 1
			}
			if _, err := insert.Exec(name, i, p.Name, typesystem.Stringify(p.Type), optional); err != nil {
				return err
			}
		}
		if sig.HasReturn {
			if _, err := insert.Exec(name, returnSlot, "", typesystem.Stringify(sig.Return), 0); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Load reads the cached declarations back as source-text config, ready
// for recompilation.
func (s *Store) Load() (*Config, error) {
	rows, err := s.db.Query(`SELECT name, slot, param_name, type_text, optional FROM signatures ORDER BY name, slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cfg := &Config{}
	var current *FunctionDecl
	for rows.Next() {
		var (
			name, paramName, typeText string
			slot, optional            int
		)
		if err := rows.Scan(&name, &slot, &paramName, &typeText, &optional); err != nil {
			return nil, err
		}

		if current == nil || current.Name != name {
			cfg.Functions = append(cfg.Functions, FunctionDecl{Name: name})
			current = &cfg.Functions[len(cfg.Functions)-1]
		}
		if slot == returnSlot {
			current.Return = typeText
			continue
		}
		current.Params = append(current.Params, ParamDecl{
			Name:     paramName,
			Type:     typeText,
			Optional: optional != 0,
		})
	}
	return cfg, rows.Err()
}

// Reload loads the cache into a fresh registry and cross-checks every
// recompiled type against live for structural equivalence. A mismatch
// means the cache is stale relative to the live declarations.
func (s *Store) Reload(live *Registry) (*Registry, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}

	reloaded := New(nil)
	if err := reloaded.Load(cfg); err != nil {
		return nil, err
	}

	for _, name := range reloaded.Names() {
		other, ok := live.Lookup(name)
		if !ok {
			continue
		}
		sig, _ := reloaded.Lookup(name)
		if len(sig.Params) != len(other.Params) || sig.HasReturn != other.HasReturn {
			return nil, fmt.Errorf("cached signature %q does not match live declaration", name)
		}
		for i := range sig.Params {
			if !typesystem.Equivalent(sig.Params[i].Type, other.Params[i].Type) {
				return nil, fmt.Errorf("cached signature %q: param %q type differs", name, sig.Params[i].Name)
			}
		}
		if sig.HasReturn && !typesystem.Equivalent(sig.Return, other.Return) {
			return nil, fmt.Errorf("cached signature %q: return type differs", name)
		}
	}
	return reloaded, nil
}
