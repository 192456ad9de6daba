package utils

import (
	"crypto/md5"
	"fmt"

	"github.com/google/uuid"
)

// GenerateFileID derives the deterministic identifier for an uploaded
// object from its name and bucket. The MD5 digest of "{name}_{bucket}"
// is reinterpreted as a 128-bit UUID, so the same (name, bucket) pair
// always yields the same ID. MD5 is used for distribution, not security.
func GenerateFileID(fileName, bucketName string) (uuid.UUID, error) {
	sum := md5.Sum([]byte(fileName + "_" + bucketName))

	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode file id: %w", err)
	}
	return id, nil
}
