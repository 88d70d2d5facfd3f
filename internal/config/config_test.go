package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Backend != "postgres" {
		t.Errorf("Database.Backend = %q, want postgres", cfg.Database.Backend)
	}
	if cfg.Database.Name != "youmdb" {
		t.Errorf("Database.Name = %q, want youmdb", cfg.Database.Name)
	}
	if cfg.RabbitMQ.RoutingKey != "suggestion.received" {
		t.Errorf("RabbitMQ.RoutingKey = %q, want suggestion.received", cfg.RabbitMQ.RoutingKey)
	}
	if cfg.YouTube.MaxUploads != 10 {
		t.Errorf("YouTube.MaxUploads = %d, want 10", cfg.YouTube.MaxUploads)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "postgres backend",
			cfg:  Config{Database: Database{Backend: "postgres"}},
		},
		{
			name: "mongodb backend with uri",
			cfg:  Config{Database: Database{Backend: "mongodb", MongoURI: "mongodb://localhost:27017"}},
		},
		{
			name:    "mongodb backend without uri",
			cfg:     Config{Database: Database{Backend: "mongodb"}},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     Config{Database: Database{Backend: "dynamo"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
