package progress

import "errors"

var (
	// ErrInvalidLessonID marks a lesson identifier that is not "{stage}-{subStage}"
	// with stage >= 1 and subStage in [1, SubStagesPerStage].
	ErrInvalidLessonID = errors.New("invalid lesson id")

	// ErrPersistenceRead marks a persisted record that could not be read or
	// decoded. Callers recover by starting from Defaults().
	ErrPersistenceRead = errors.New("persistence read failed")

	// ErrPersistenceWrite marks a record that could not be saved. It is only
	// ever logged; in-memory play continues.
	ErrPersistenceWrite = errors.New("persistence write failed")
)
