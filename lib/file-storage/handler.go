package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"hr-requests-backend/config"
	"hr-requests-backend/db"
	attachmentstore "hr-requests-backend/lib/file-storage/store"
	"hr-requests-backend/models"
	requestapimodels "hr-requests-backend/models/api/request"
	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	Upload(ctx context.Context, requestID, uploaderID, fileName string, file []byte) (id string, err error)
	GetFile(ctx context.Context, attachmentID string) (fileName string, data []byte, err error)
	List(requestID string) (list []requestapimodels.AttachmentView, err error)
	Delete(ctx context.Context, attachmentID string) error
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
		store:    attachmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client *minio.Client
	store    attachmentstore.Provider
}

func (i impl) Upload(ctx context.Context, requestID, uploaderID, fileName string, file []byte) (string, error) {
	if i.s3client == nil {
		return "", errors.New("хранилище файлов не настроено")
	}
	rec := dbmodels.RequestAttachment{
		RequestID:  requestID,
		UploaderID: uploaderID,
		FileName:   fileName,
		Size:       int64(len(file)),
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения вложения")
	}
	objectKey := i.getObjectKey(requestID, id)
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		_ = i.store.Delete(id)
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	err = i.store.Update(id, map[string]interface{}{"object_key": objectKey})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (i impl) GetFile(ctx context.Context, attachmentID string) (string, []byte, error) {
	rec, err := i.store.GetByID(attachmentID)
	if err != nil {
		return "", nil, err
	}
	if rec == nil {
		return "", nil, models.ErrNotFound
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	data, err := io.ReadAll(object)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return rec.FileName, data, nil
}

func (i impl) List(requestID string) ([]requestapimodels.AttachmentView, error) {
	recs, err := i.store.ListByRequest(requestID)
	if err != nil {
		return nil, err
	}
	list := make([]requestapimodels.AttachmentView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, requestapimodels.AttachmentView{
			ID:       rec.ID,
			FileName: rec.FileName,
			Size:     rec.Size,
		})
	}
	return list, nil
}

func (i impl) Delete(ctx context.Context, attachmentID string) error {
	rec, err := i.store.GetByID(attachmentID)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	err = i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	return i.store.Delete(attachmentID)
}

func (i impl) getObjectKey(requestID, attachmentID string) string {
	return fmt.Sprintf("%s/%s", requestID, attachmentID)
}
