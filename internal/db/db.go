package db

import (
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/voicer-app/voicer/internal/audio"
	"github.com/voicer-app/voicer/internal/usage"
)

// Connect opens the sqlite database and migrates the schema. Connection
// failures at startup are fatal.
func Connect(path string) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite %q: %v", path, err)
	}
	if err := gdb.AutoMigrate(&audio.Audio{}, &audio.GenerationJob{}, &usage.TtsRequest{}); err != nil {
		log.Fatalf("automigrate: %v", err)
	}
	return gdb
}
