package modelstore

import "time"

type Config struct {
	// Timer for performing record cleaning operations in the DB
	RebuildDBTime time.Duration `envconfig:"GROVE_STORE_REBUILD_DB_TIME" default:"15s"`
	// maximum number of persisted records for each algorithm
	MaxItemsStored int `envconfig:"GROVE_STORE_MAX_ITEMS_STORED" default:"1000"`
	// maximum retention period for persisted records
	MaxStorageTime time.Duration `envconfig:"GROVE_STORE_MAX_STORAGE_TIME" default:"0s"`
	// Critical buffer size at which records are flushed to disk
	DBFlushSize int `envconfig:"GROVE_STORE_FLUSH_SIZE" default:"10"`
	// Critical buffer age at which records are flushed to disk
	DBFlushTime time.Duration `envconfig:"GROVE_STORE_FLUSH_TIME" default:"5s"`
}
