package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"aiko-bot/datastore"
)

const (
	userKeyPrefix = "user:"
	schemaKey     = "schema_version"
	emailsKey     = "premium_emails"

	// schemaVersion is bumped whenever UserRecord gains fields that need
	// backfilling. Migration runs once at startup.
	schemaVersion = 2
)

// UserStore keeps UserRecords in the JSON datastore and serializes all
// mutations per user ID. Request-path handlers and maintenance sweeps both go
// through WithUser, so two writers can never interleave on the same record.
type UserStore struct {
	ds  *datastore.DataStore
	log zerolog.Logger

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	emailMu sync.Mutex
}

// NewUserStore opens (or creates) the store at path and migrates the schema.
func NewUserStore(path string, log zerolog.Logger) (*UserStore, error) {
	cfg := datastore.DefaultConfig(path)
	cfg.Logger = log
	ds, err := datastore.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	s := &UserStore{
		ds:    ds,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}
	if err := s.migrate(); err != nil {
		ds.Close()
		return nil, err
	}
	return s, nil
}

func (s *UserStore) Close() error {
	return s.ds.Close()
}

// Flush forces an immediate durable save.
func (s *UserStore) Flush() error {
	return s.ds.SaveToFile()
}

// userLock returns the mutex for a user ID, creating it on first use. Locks
// are never removed; the set of distinct users is small.
func (s *UserStore) userLock(userID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	return mu
}

// WithUser runs fn with the user's record under the per-user lock, then
// writes the record back. The record is created with defaults if missing.
// fn may perform blocking calls; the lock is held for the whole
// read-modify-write on purpose.
func (s *UserStore) WithUser(userID string, fn func(rec *UserRecord) error) error {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	rec, err := s.loadOrCreate(userID)
	if err != nil {
		return err
	}
	if err := fn(rec); err != nil {
		return err
	}
	s.ds.Add(userKeyPrefix+userID, rec)
	return nil
}

// Peek returns a copy of a user's record without creating one.
func (s *UserStore) Peek(userID string) (*UserRecord, bool) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	raw, exists := s.ds.Get(userKeyPrefix + userID)
	if !exists {
		return nil, false
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		return nil, false
	}
	return rec, true
}

// DeleteUser removes the user's record entirely.
func (s *UserStore) DeleteUser(userID string) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()
	s.ds.Delete(userKeyPrefix + userID)
}

// UserIDs lists all known user IDs, sorted for stable sweep order.
func (s *UserStore) UserIDs() []string {
	var ids []string
	for _, k := range s.ds.Keys() {
		if len(k) > len(userKeyPrefix) && k[:len(userKeyPrefix)] == userKeyPrefix {
			ids = append(ids, k[len(userKeyPrefix):])
		}
	}
	sort.Strings(ids)
	return ids
}

func (s *UserStore) loadOrCreate(userID string) (*UserRecord, error) {
	raw, exists := s.ds.Get(userKeyPrefix + userID)
	if !exists {
		return newUserRecord(), nil
	}
	return decodeRecord(raw)
}

// decodeRecord round-trips the stored value through JSON. The datastore hands
// back map[string]any after a file load and *UserRecord for values written in
// this process.
func decodeRecord(raw any) (*UserRecord, error) {
	if rec, ok := raw.(*UserRecord); ok {
		cp := *rec
		cp.Memory = append([]MemoryEntry(nil), rec.Memory...)
		return &cp, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var rec UserRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	if rec.Memory == nil {
		rec.Memory = []MemoryEntry{}
	}
	return &rec, nil
}

// --- email allowlist ---

// AddEmail adds an email to the premium allowlist. Duplicates are ignored.
func (s *UserStore) AddEmail(email string) {
	s.emailMu.Lock()
	defer s.emailMu.Unlock()
	list := s.loadEmails()
	for _, e := range list {
		if e == email {
			return
		}
	}
	s.ds.Add(emailsKey, append(list, email))
}

// ConsumeEmail removes an email from the allowlist. Returns false if absent.
// Consumption happens exactly once per claim.
func (s *UserStore) ConsumeEmail(email string) bool {
	s.emailMu.Lock()
	defer s.emailMu.Unlock()
	list := s.loadEmails()
	for i, e := range list {
		if e == email {
			s.ds.Add(emailsKey, append(list[:i:i], list[i+1:]...))
			return true
		}
	}
	return false
}

// HasEmail reports whether an email sits in the allowlist, without consuming.
func (s *UserStore) HasEmail(email string) bool {
	s.emailMu.Lock()
	defer s.emailMu.Unlock()
	for _, e := range s.loadEmails() {
		if e == email {
			return true
		}
	}
	return false
}

func (s *UserStore) loadEmails() []string {
	raw, exists := s.ds.Get(emailsKey)
	if !exists {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// --- schema migration ---

// migrate backfills fields missing from records written by older revisions.
// Old documents had no schema version key at all; those count as version 0.
func (s *UserStore) migrate() error {
	current := 0
	if raw, exists := s.ds.Get(schemaKey); exists {
		if f, ok := raw.(float64); ok {
			current = int(f)
		}
		if i, ok := raw.(int); ok {
			current = i
		}
	}
	if current >= schemaVersion {
		return nil
	}

	migrated := 0
	for _, key := range s.ds.Keys() {
		if len(key) <= len(userKeyPrefix) || key[:len(userKeyPrefix)] != userKeyPrefix {
			continue
		}
		raw, exists := s.ds.Get(key)
		if !exists {
			continue
		}
		doc, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		backfillRecord(doc)
		s.ds.Add(key, doc)
		migrated++
	}

	s.ds.Add(schemaKey, schemaVersion)
	if err := s.ds.SaveToFile(); err != nil {
		return fmt.Errorf("save after migration: %w", err)
	}
	s.log.Info().Int("from", current).Int("to", schemaVersion).Int("records", migrated).
		Msg("schema migrated")
	return nil
}

// backfillRecord fills defaults for keys older revisions never wrote. Bond in
// particular must default to 20, not the zero value.
func backfillRecord(doc map[string]any) {
	if _, ok := doc["bond"]; !ok {
		doc["bond"] = BondDefault
	}
	if _, ok := doc["points"]; !ok {
		doc["points"] = 0
	}
	if _, ok := doc["streak"]; !ok {
		doc["streak"] = 0
	}
	if _, ok := doc["previous_streak"]; !ok {
		doc["previous_streak"] = 0
	}
	if _, ok := doc["premium"]; !ok {
		doc["premium"] = false
	}
	if _, ok := doc["point_received_for_vote"]; !ok {
		doc["point_received_for_vote"] = false
	}
	if _, ok := doc["memory_limit_notice"]; !ok {
		doc["memory_limit_notice"] = false
	}
	if _, ok := doc["memory"]; !ok {
		doc["memory"] = []any{}
	}
}
