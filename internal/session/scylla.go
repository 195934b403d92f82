package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocql/gocql"
)

// Schéma attendu (créé par EnsureScyllaSchema ou manuellement) :
//
//	CREATE TABLE session_kv (namespace text, key text, value text, PRIMARY KEY (namespace, key))
const scyllaTable = "session_kv"

type ScyllaStore struct {
	session   *gocql.Session
	namespace string
}

func NewScyllaStore(session *gocql.Session, namespace string) *ScyllaStore {
	return &ScyllaStore{session: session, namespace: namespace}
}

func ScyllaFactory(session *gocql.Session) Factory {
	return func(namespace string) Store {
		return NewScyllaStore(session, namespace)
	}
}

// EnsureScyllaSchema crée la table si elle n'existe pas dans le keyspace courant
func EnsureScyllaSchema(ctx context.Context, session *gocql.Session) error {
	q := `CREATE TABLE IF NOT EXISTS ` + scyllaTable + ` (
		namespace text,
		key text,
		value text,
		PRIMARY KEY (namespace, key)
	)`
	if err := session.Query(q).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("create %s failed: %w", scyllaTable, err)
	}
	return nil
}

func (s *ScyllaStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.session.Query(`SELECT value FROM `+scyllaTable+` WHERE namespace = ? AND key = ?`,
		s.namespace, key).WithContext(ctx).Scan(&value)
	if errors.Is(err, gocql.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("scylla get failed: %w", err)
	}
	return value, nil
}

func (s *ScyllaStore) Set(ctx context.Context, key, value string) error {
	err := s.session.Query(`INSERT INTO `+scyllaTable+` (namespace, key, value) VALUES (?, ?, ?)`,
		s.namespace, key, value).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla set failed: %w", err)
	}
	return nil
}

func (s *ScyllaStore) Remove(ctx context.Context, key string) error {
	err := s.session.Query(`DELETE FROM `+scyllaTable+` WHERE namespace = ? AND key = ?`,
		s.namespace, key).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla delete failed: %w", err)
	}
	return nil
}
