package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Database.Name != "tourly_db" {
		t.Fatalf("expected default db name tourly_db, got %s", cfg.Database.Name)
	}
	if cfg.Booking.SettlementDelay != 3*time.Second {
		t.Fatalf("expected settlement delay 3s, got %v", cfg.Booking.SettlementDelay)
	}
	if cfg.Booking.SuccessCloseDelay != 2*time.Second {
		t.Fatalf("expected success close delay 2s, got %v", cfg.Booking.SuccessCloseDelay)
	}
	if cfg.Booking.PaymentDeadline != 24*time.Hour {
		t.Fatalf("expected payment deadline 24h, got %v", cfg.Booking.PaymentDeadline)
	}
	if cfg.Redis.WizardSessionTTL != 30*time.Minute {
		t.Fatalf("expected wizard session TTL 30m, got %v", cfg.Redis.WizardSessionTTL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	os.Clearenv()
	os.Setenv("PORT", "9090")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("PAYMENT_SETTLEMENT_DELAY", "50ms")
	os.Setenv("KAFKA_ENABLED", "true")
	os.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	defer os.Clearenv()

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Fatalf("expected db host db.internal, got %s", cfg.Database.Host)
	}
	if cfg.Booking.SettlementDelay != 50*time.Millisecond {
		t.Fatalf("expected settlement delay 50ms, got %v", cfg.Booking.SettlementDelay)
	}
	if !cfg.Kafka.Enabled {
		t.Fatal("expected kafka enabled")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("expected two trimmed brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestDatabaseDSN(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_HOST", "pg")
	os.Setenv("DB_NAME", "tours")
	defer os.Clearenv()

	cfg := Load()

	want := "host=pg port=5432 user=tourly_user password=tourly_password dbname=tours sslmode=disable"
	if cfg.Database.DSN != want {
		t.Fatalf("unexpected DSN:\n got %s\nwant %s", cfg.Database.DSN, want)
	}
}

func TestServerAddressAndBasePath(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	if cfg.GetServerAddress() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.GetServerAddress())
	}
	if cfg.GetAPIBasePath() != "/api/v1" {
		t.Fatalf("expected /api/v1, got %s", cfg.GetAPIBasePath())
	}
}
