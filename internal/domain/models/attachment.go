// internal/domain/models/attachment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment is the metadata record for one uploaded file. It is embedded
// in its Group document; the bytes live in the file store under StorageName.
type Attachment struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	OriginalName string             `bson:"original_name" json:"originalName"`
	StorageName  string             `bson:"storage_name" json:"fileName"`
	FileURL      string             `bson:"file_url" json:"fileUrl"`
	Size         int64              `bson:"size" json:"fileSize"`
	MediaType    string             `bson:"media_type" json:"mimeType"`
	UploadedBy   primitive.ObjectID `bson:"uploaded_by" json:"uploadedBy"`
	UploadedAt   time.Time          `bson:"uploaded_at" json:"uploadedAt"`
}
