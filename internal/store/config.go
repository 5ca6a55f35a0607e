package store

import "time"

// Store drivers selectable through STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
	DriverS3       = "s3"
)

// Config selects the submission store. FileDir applies to the file driver and
// S3 to the s3 driver. GuardTTL is how long an idempotency key is held.
type Config struct {
	Driver   string        `env:"STORE_DRIVER" envDefault:"file"`
	FileDir  string        `env:"STORE_FILE_DIR" envDefault:"./data/submissions"`
	GuardTTL time.Duration `env:"STORE_GUARD_TTL" envDefault:"24h"`
	S3       S3Config
}

// S3Config points the s3 driver at a bucket. Endpoint and ForcePathStyle are
// for S3-compatible services such as MinIO.
type S3Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_ACCESS_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	Prefix         string `env:"S3_PREFIX" envDefault:"submissions"`
}
