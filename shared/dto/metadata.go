package dto

import (
	"furk/shared/constant"
	"furk/shared/model"
	"furk/shared/timezone"
)

// Metadata is the response form of the audit columns, with timestamps
// rendered in the application timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	m.CreatedAt = timezone.Format(meta.CreatedAt, constant.DateFormat)
	m.ModifiedAt = timezone.Format(meta.ModifiedAt, constant.DateFormat)
	m.CreatedBy = meta.CreatedBy
	m.ModifiedBy = meta.ModifiedBy
}
