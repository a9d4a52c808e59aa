package filestorage

import (
	"bytes"
	"context"
	"procurement-tools-backend/config"
	"procurement-tools-backend/db"
	filesdbstorage "procurement-tools-backend/lib/file-storage/storage"
	dbmodels "procurement-tools-backend/models/db"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Upload(ctx context.Context, info dbmodels.UploadFileInfo, body []byte) (fileID string, err error)
	Get(ctx context.Context, fileID string) (rec *dbmodels.FileStorage, body []byte, err error)
	Delete(ctx context.Context, fileID string) error
	ListByRequest(requestID string) (list []dbmodels.FileStorage, err error)
	MakeBucket(ctx context.Context) error
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	Instance = impl{
		s3client:  s3client,
		fileStore: filesdbstorage.NewInstance(db.DB),
	}
}

type impl struct {
	s3client  *minio.Client
	fileStore filesdbstorage.Provider
}

func (i impl) Upload(ctx context.Context, info dbmodels.UploadFileInfo, body []byte) (fileID string, err error) {
	rec := dbmodels.FileStorage{
		Name:        info.FileName,
		RequestID:   info.RequestID,
		ItemID:      info.ItemID,
		Type:        info.FileType,
		ContentType: info.ContentType,
		Size:        int64(len(body)),
	}
	fileID, err = i.fileStore.SaveFile(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения данных о файле")
	}
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, fileID,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: info.ContentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	return fileID, nil
}

func (i impl) Get(ctx context.Context, fileID string) (rec *dbmodels.FileStorage, body []byte, err error) {
	rec, err = i.fileStore.GetByID(fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New("файл не найден")
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer func() {
		if cErr := object.Close(); cErr != nil {
			log.WithError(cErr).Error("ошибка закрытия объекта хранилища")
		}
	}()
	buf := new(bytes.Buffer)
	if _, err = buf.ReadFrom(object); err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return rec, buf.Bytes(), nil
}

func (i impl) Delete(ctx context.Context, fileID string) error {
	err := i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, fileID, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	if err = i.fileStore.Delete(fileID); err != nil {
		return errors.Wrap(err, "ошибка удаления данных о файле")
	}
	return nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.FileStorage, err error) {
	return i.fileStore.GetListByRequest(requestID)
}

func (i impl) MakeBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.BucketName
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
	if err != nil {
		return err
	}
	return nil
}
