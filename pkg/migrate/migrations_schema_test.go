package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestInitSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE UNIQUE INDEX users_email_key ON users (email)",
		"CHECK (goal_cents > 0)",
		"CHECK (raised_cents >= 0)",
		"CHECK (amount_cents > 0)",
		"CREATE UNIQUE INDEX donations_campaign_position_key ON donations (campaign_id, position)",
		"CREATE UNIQUE INDEX user_follows_pair_key ON user_follows (follower_id, followee_id)",
		"CREATE UNIQUE INDEX saved_campaigns_pair_key ON saved_campaigns (user_id, campaign_id)",
		"DROP TABLE IF EXISTS donations",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
