package config

type StorageProvider string

const (
	StorageProviderLocal StorageProvider = "local"
	StorageProviderS3    StorageProvider = "s3"
)

// StorageConfig configura el almacenamiento de reportes exportados.
type StorageConfig struct {
	Provider StorageProvider
	Local    LocalStorageConfig
	S3       S3StorageConfig
}

type LocalStorageConfig struct {
	BasePath string
}

type S3StorageConfig struct {
	Bucket string
	Region string
	Prefix string
}

func loadStorageConfig() StorageConfig {
	provider := StorageProviderLocal
	if getEnv("STORAGE_PROVIDER", "local") == "s3" {
		provider = StorageProviderS3
	}

	return StorageConfig{
		Provider: provider,
		Local: LocalStorageConfig{
			BasePath: getEnv("STORAGE_LOCAL_PATH", "./data/reports"),
		},
		S3: S3StorageConfig{
			Bucket: getEnv("STORAGE_S3_BUCKET", ""),
			Region: getEnv("STORAGE_S3_REGION", "us-east-1"),
			Prefix: getEnv("STORAGE_S3_PREFIX", "reports/"),
		},
	}
}
