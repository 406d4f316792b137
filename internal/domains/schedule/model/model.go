package model

import (
	"time"

	"furk/shared/model"
)

const (
	HoursTableName  = "merchant_hours"
	HoursEntityName = "merchant_hours"

	BreakTableName  = "break_hours"
	BreakEntityName = "break_hours"

	ClosureTableName  = "merchant_closures"
	ClosureEntityName = "merchant_closure"

	FieldID         = "id"
	FieldMerchantID = "merchant_id"
	FieldDayOfWeek  = "day_of_week"
	FieldOpenTime   = "open_time"
	FieldCloseTime  = "close_time"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldLabel      = "label"
)

// MerchantHours is one standing open window. Days are numbered Monday=0
// through Sunday=6; at most one row per (merchant, day).
type MerchantHours struct {
	ID         string `db:"id"`
	MerchantID string `db:"merchant_id"`
	DayOfWeek  int    `db:"day_of_week"`
	OpenTime   string `db:"open_time"`
	CloseTime  string `db:"close_time"`
	model.Metadata
}

// MerchantBreak is a recurring within-day pause, e.g. a lunch break.
type MerchantBreak struct {
	ID         string `db:"id"`
	MerchantID string `db:"merchant_id"`
	DayOfWeek  int    `db:"day_of_week"`
	StartTime  string `db:"start_time"`
	EndTime    string `db:"end_time"`
	Label      string `db:"label"`
	model.Metadata
}

// MerchantClosure is a one-off closed period overriding the standing hours
// for every day it touches.
type MerchantClosure struct {
	ID         string    `db:"id"`
	MerchantID string    `db:"merchant_id"`
	StartTime  time.Time `db:"start_time"`
	EndTime    time.Time `db:"end_time"`
	model.Metadata
}
