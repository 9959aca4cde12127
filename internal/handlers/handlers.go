package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"debtster_report/internal/adapters/opener"
	"debtster_report/internal/config/connections/mongo"
	"debtster_report/internal/config/connections/postgres"
	"debtster_report/internal/config/connections/s3"
	"debtster_report/internal/ports"
	"debtster_report/internal/services/exporter"
	"debtster_report/internal/services/report"
)

type Handlers struct {
	Postgres *postgres.Postgres
	Mongo    *mongo.Mongo
	S3       *s3.S3
	HTTP     *http.Client

	Reports  *report.Service
	Uploader *exporter.Uploader
	Opener   ports.FileOpener

	Logger *log.Logger
}

func New(pg *postgres.Postgres, mg *mongo.Mongo, s3c *s3.S3) *Handlers {
	httpClient := &http.Client{}

	h := &Handlers{
		Postgres: pg,
		Mongo:    mg,
		S3:       s3c,
		HTTP:     httpClient,
		Reports:  report.NewService(report.DefaultRegistry(pg)),
		Logger:   log.Default(),
	}

	if s3c != nil {
		h.Uploader = exporter.NewUploader(s3c.Client, s3c.Bucket)
		h.Opener = opener.NewCompoundOpener(
			opener.NewHTTPOpener(httpClient),
			opener.NewS3Opener(s3c.Client),
			s3c.Bucket,
		)
	}

	return h
}

func (h *Handlers) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
