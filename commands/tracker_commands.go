package commands

import (
	"context"

	"tracker/constants"
	"tracker/models"
)

// DocumentWriter là phần ghi của document store
type DocumentWriter interface {
	Set(ctx context.Context, collection, id string, doc *models.TrackerDocument) error
	Update(ctx context.Context, collection, id string, fields models.Fields) error
}

// TrackerCommand định nghĩa interface cho các command ghi document
type TrackerCommand interface {
	Execute(ctx context.Context) error
}

// CreateTrackerCommand ghi toàn bộ document (set)
type CreateTrackerCommand struct {
	doc   *models.TrackerDocument
	store DocumentWriter
}

func NewCreateTrackerCommand(doc *models.TrackerDocument, store DocumentWriter) *CreateTrackerCommand {
	return &CreateTrackerCommand{
		doc:   doc,
		store: store,
	}
}

func (c *CreateTrackerCommand) Execute(ctx context.Context) error {
	return c.store.Set(ctx, constants.TrackerCollection, c.doc.UserID, c.doc)
}

// PatchTrackerCommand chỉ ghi các field được chỉ định (update)
type PatchTrackerCommand struct {
	userID string
	fields models.Fields
	store  DocumentWriter
}

func NewPatchTrackerCommand(userID string, fields models.Fields, store DocumentWriter) *PatchTrackerCommand {
	return &PatchTrackerCommand{
		userID: userID,
		fields: fields,
		store:  store,
	}
}

func (c *PatchTrackerCommand) Execute(ctx context.Context) error {
	return c.store.Update(ctx, constants.TrackerCollection, c.userID, c.fields)
}

// NewDayResetCommand reset daily và cập nhật lastLogin khi sang ngày mới
func NewDayResetCommand(userID, today string, cleared []bool, store DocumentWriter) *PatchTrackerCommand {
	return NewPatchTrackerCommand(userID, models.Fields{
		constants.FieldDaily:     cleared,
		constants.FieldLastLogin: today,
	}, store)
}

// NewSaveChecksCommand ghi daily và roadmap, không đụng streak/lastLogin
func NewSaveChecksCommand(userID string, daily, roadmap []bool, store DocumentWriter) *PatchTrackerCommand {
	return NewPatchTrackerCommand(userID, models.Fields{
		constants.FieldDaily:   daily,
		constants.FieldRoadmap: roadmap,
	}, store)
}
