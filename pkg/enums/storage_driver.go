package enums

import (
	"fmt"
	"strings"
)

// StorageDriver selects the blob store backend for snapshots.
type StorageDriver string

const (
	StorageDriverMemory StorageDriver = "memory"
	StorageDriverRedis  StorageDriver = "redis"
	StorageDriverSQL    StorageDriver = "sql"
	StorageDriverS3     StorageDriver = "s3"
)

var validStorageDrivers = []StorageDriver{
	StorageDriverMemory,
	StorageDriverRedis,
	StorageDriverSQL,
	StorageDriverS3,
}

// String implements fmt.Stringer.
func (d StorageDriver) String() string {
	return string(d)
}

// IsValid reports whether the value is a known StorageDriver.
func (d StorageDriver) IsValid() bool {
	for _, candidate := range validStorageDrivers {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseStorageDriver converts raw input into a StorageDriver.
func ParseStorageDriver(value string) (StorageDriver, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validStorageDrivers {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid storage driver %q", value)
}
