package reports

import (
	"context"
	"fmt"
	"time"

	mg "debtster_report/internal/config/connections/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReportRecordsCollection = "report_records"

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Record struct {
	ID         any        `bson:"_id" json:"id"`
	UserID     *string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Type       string     `bson:"type" json:"type"`
	Status     string     `bson:"status" json:"status"`
	Format     string     `bson:"format" json:"format"`
	Rows       int        `bson:"rows" json:"rows"`
	Errors     *string    `bson:"errors,omitempty" json:"errors,omitempty"`
	Path       *string    `bson:"path,omitempty" json:"path,omitempty"`
	Bucket     *string    `bson:"bucket,omitempty" json:"bucket,omitempty"`
	Key        *string    `bson:"key,omitempty" json:"key,omitempty"`
	SizeBytes  *int64     `bson:"size_bytes,omitempty" json:"size_bytes,omitempty"`
	FinishedAt *time.Time `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
}

func InsertReportRecord(ctx context.Context, m *mg.Mongo, rec Record) (*mongo.InsertOneResult, error) {
	if m == nil || m.Client == nil || m.Database == nil {
		return nil, mongo.ErrClientDisconnected
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = StatusRunning
	}

	doc := bson.D{
		{Key: "user_id", Value: rec.UserID},
		{Key: "type", Value: rec.Type},
		{Key: "status", Value: rec.Status},
		{Key: "format", Value: rec.Format},
		{Key: "rows", Value: rec.Rows},
		{Key: "errors", Value: rec.Errors},
		{Key: "path", Value: rec.Path},
		{Key: "bucket", Value: rec.Bucket},
		{Key: "key", Value: rec.Key},
		{Key: "size_bytes", Value: rec.SizeBytes},
		{Key: "created_at", Value: rec.CreatedAt},
		{Key: "updated_at", Value: rec.UpdatedAt},
	}

	return m.Database.Collection(ReportRecordsCollection).InsertOne(ctx, doc, options.InsertOne())
}

// MarkCompleted closes out a run with its row count and, when the export
// was uploaded, the object location.
func MarkCompleted(ctx context.Context, m *mg.Mongo, id any, rows int, path, bucket, key string, size int64) error {
	set := bson.M{
		"status":      StatusCompleted,
		"rows":        rows,
		"finished_at": time.Now().UTC(),
		"updated_at":  time.Now().UTC(),
	}
	if path != "" {
		set["path"] = path
		set["bucket"] = bucket
		set["key"] = key
		set["size_bytes"] = size
	}
	return updateRecord(ctx, m, id, set)
}

func MarkFailed(ctx context.Context, m *mg.Mongo, id any, errMsg string) error {
	return updateRecord(ctx, m, id, bson.M{
		"status":      StatusFailed,
		"errors":      errMsg,
		"finished_at": time.Now().UTC(),
		"updated_at":  time.Now().UTC(),
	})
}

func updateRecord(ctx context.Context, m *mg.Mongo, id any, set bson.M) error {
	if m == nil || m.Database == nil {
		return mongo.ErrClientDisconnected
	}
	_, err := m.Database.Collection(ReportRecordsCollection).
		UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

func FindReportRecordByID(ctx context.Context, m *mg.Mongo, id string) (Record, error) {
	var out Record
	if m == nil || m.Database == nil {
		return out, mongo.ErrClientDisconnected
	}
	coll := m.Database.Collection(ReportRecordsCollection)

	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err == nil {
			out.ID = oid
			return out, nil
		}
	}

	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return out, fmt.Errorf("not found: %w", err)
	}
	out.ID = id
	return out, nil
}

func ListReportRecords(ctx context.Context, m *mg.Mongo, filter bson.M, limit, skip int64) ([]Record, int64, error) {
	if m == nil || m.Database == nil {
		return nil, 0, mongo.ErrClientDisconnected
	}
	coll := m.Database.Collection(ReportRecordsCollection)
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if skip > 0 {
		opts.SetSkip(skip)
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	recs := make([]Record, 0)
	for cur.Next(ctx) {
		var r Record
		if err := cur.Decode(&r); err != nil {
			continue
		}
		recs = append(recs, r)
	}
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		total = int64(len(recs))
	}
	return recs, total, nil
}
