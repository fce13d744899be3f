package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gocql/gocql"
)

// ScyllaSession porte le journal d'audit (table audit_logs), en dehors du
// cœur relationnel. Si la connexion échoue au démarrage, l'API tourne quand
// même : l'audit est best-effort.
var ScyllaSession *gocql.Session

func ConnectScylla() error {
	hosts := os.Getenv("SCYLLA_HOSTS")
	if hosts == "" {
		hosts = "localhost:9042"
	}
	keyspace := os.Getenv("SCYLLA_KEYSPACE")
	if keyspace == "" {
		keyspace = "lavoir"
	}

	cluster := gocql.NewCluster(strings.Split(hosts, ",")...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second

	session, err := cluster.CreateSession()
	if err != nil {
		return fmt.Errorf("connexion Scylla: %w", err)
	}

	err = session.Query(`
		CREATE TABLE IF NOT EXISTS audit_logs (
			id timeuuid PRIMARY KEY,
			user_id text,
			user_email text,
			action text,
			resource text,
			resource_id text,
			old_value text,
			new_value text,
			ip_address text,
			user_agent text,
			success boolean,
			error_msg text,
			timestamp timestamp
		)`).Exec()
	if err != nil {
		session.Close()
		return fmt.Errorf("création table audit_logs: %w", err)
	}

	ScyllaSession = session
	log.Println("✅ ScyllaDB connecté (journal d'audit)")
	return nil
}

func CloseScylla() {
	if ScyllaSession != nil {
		ScyllaSession.Close()
	}
}
