package database

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"

	"cedra_storefront/internal/config"
	"cedra_storefront/internal/session"
)

// Backends garde les connexions ouvertes au démarrage
type Backends struct {
	Redis  *redis.Client
	Scylla *gocql.Session
}

func (b *Backends) Close() {
	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			log.Printf("⚠️ Fermeture Redis: %v", err)
		}
	}
	if b.Scylla != nil {
		b.Scylla.Close()
		log.Println("🔌 Session ScyllaDB fermée")
	}
}

// OpenSessionStore ouvre le backend choisi par STORE_BACKEND.
// Redis est aussi connecté dès que REDIS_HOST est défini (limite de tentatives de login).
func OpenSessionStore(ctx context.Context, cfg config.Config) (session.Factory, *Backends, error) {
	b := &Backends{}

	if cfg.RedisHost != "" || cfg.StoreBackend == config.BackendRedis {
		client, err := ConnectRedis(ctx, cfg)
		if err != nil {
			if cfg.StoreBackend == config.BackendRedis {
				return nil, nil, err
			}
			log.Printf("⚠️ Redis indisponible, limite de tentatives désactivée: %v", err)
		} else {
			b.Redis = client
		}
	}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Println("⚠️ Sessions en mémoire : perdues au redémarrage")
		return session.MemoryFactory(), b, nil

	case config.BackendFile:
		if err := os.MkdirAll(cfg.StoreDir, 0o755); err != nil {
			b.Close()
			return nil, nil, fmt.Errorf("create store dir failed: %w", err)
		}
		log.Printf("✅ Sessions fichier dans %s", cfg.StoreDir)
		return session.FileFactory(cfg.StoreDir), b, nil

	case config.BackendRedis:
		return session.RedisFactory(b.Redis), b, nil

	case config.BackendScylla:
		s, err := ConnectScylla(cfg)
		if err != nil {
			b.Close()
			return nil, nil, err
		}
		b.Scylla = s
		if err := session.EnsureScyllaSchema(ctx, s); err != nil {
			b.Close()
			return nil, nil, err
		}
		return session.ScyllaFactory(s), b, nil
	}

	b.Close()
	return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

// =============================================
// REDIS
// =============================================
func ConnectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if cfg.RedisHost == "" {
		return nil, fmt.Errorf("REDIS_HOST non configuré")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost,
		Password:     cfg.RedisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	log.Println("✅ Connecté à Redis")
	return client, nil
}

// =============================================
// SCYLLA DB
// =============================================
func ConnectScylla(cfg config.Config) (*gocql.Session, error) {
	if len(cfg.ScyllaHosts) == 0 {
		return nil, fmt.Errorf("SCYLLA_HOSTS non configuré")
	}
	cluster, err := createScyllaCluster(cfg)
	if err != nil {
		return nil, fmt.Errorf("erreur configuration cluster pour %s: %w", cfg.ScyllaKeyspace, err)
	}

	s, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("erreur création session pour %s: %w", cfg.ScyllaKeyspace, err)
	}
	log.Printf("✅ Session ScyllaDB pour keyspace '%s'", cfg.ScyllaKeyspace)
	return s, nil
}

func createScyllaCluster(cfg config.Config) (*gocql.ClusterConfig, error) {
	cluster := gocql.NewCluster(cfg.ScyllaHosts...)
	cluster.Keyspace = cfg.ScyllaKeyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.ReconnectInterval = 1 * time.Second
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	if cfg.ScyllaUsername != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.ScyllaUsername,
			Password: cfg.ScyllaPassword,
		}
	}

	if cfg.ScyllaSSL && cfg.ScyllaCAPath != "" {
		caCert, err := os.ReadFile(cfg.ScyllaCAPath)
		if err != nil {
			return nil, fmt.Errorf("impossible de lire le certificat CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("impossible de parser le certificat CA")
		}
		cluster.SslOpts = &gocql.SslOptions{
			Config: &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12},
		}
	}

	return cluster, nil
}
