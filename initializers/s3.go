package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"hr-requests-backend/config"
	s3client "hr-requests-backend/s3"
)

func InitS3() {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, вложения недоступны")
		return
	}
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	s3client.Client = minioClient
	err = s3client.MakeBucket(context.Background())
	if err != nil {
		log.WithError(err).Error("Ошибка создания бакета для вложений")
	}
	log.Info("S3 клиент успешно инициализирован")
}
