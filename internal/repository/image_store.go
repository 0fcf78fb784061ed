package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time interface assertion.
var _ ImageStore = (*GridFSImageStore)(nil)

type imageMetadata struct {
	ContentType string `bson:"contentType"`
}

// GridFSImageStore keeps uploaded listing images in a GridFS bucket,
// keyed by a generated public ID.
type GridFSImageStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSImageStore(db *mongo.Database) (*GridFSImageStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &GridFSImageStore{bucket: bucket}, nil
}

// Upload stores the blob and returns its public ID.
func (s *GridFSImageStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
	}

	publicID := uuid.NewString()
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	if err := s.bucket.UploadFromStreamWithID(publicID, filename, r, opts); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return publicID, nil
}

// Get loads a stored blob by public ID.
func (s *GridFSImageStore) Get(ctx context.Context, publicID string) (StoredImage, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetReadDeadline(deadline)
	}

	stream, err := s.bucket.OpenDownloadStream(publicID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return StoredImage{}, ErrNotFound
		}
		return StoredImage{}, fmt.Errorf("open image: %w", err)
	}
	defer stream.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, stream); err != nil {
		return StoredImage{}, fmt.Errorf("read image: %w", err)
	}

	image := StoredImage{PublicID: publicID, Data: buf.Bytes()}
	if file := stream.GetFile(); file != nil {
		image.Filename = file.Name
		if len(file.Metadata) > 0 {
			var meta imageMetadata
			if err := bson.Unmarshal(file.Metadata, &meta); err == nil {
				image.ContentType = meta.ContentType
			}
		}
	}
	return image, nil
}

// Delete removes a stored blob by public ID.
func (s *GridFSImageStore) Delete(ctx context.Context, publicID string) error {
	if err := s.bucket.DeleteContext(ctx, publicID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
