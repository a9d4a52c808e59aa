package initializers

import (
	"context"
	filestorage "procurement-tools-backend/lib/file-storage"
	s3client "procurement-tools-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}
	s3client.Client = client

	filestorage.NewHandler(client)
	if err = filestorage.Instance.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("Ошибка создания бакета S3")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
