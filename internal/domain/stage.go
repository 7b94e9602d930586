package domain

// LearningStage is the memory model's classification of an item's maturity.
// The numeric encoding is part of the persisted wire format.
type LearningStage int

const (
	StageNew LearningStage = iota
	StageLearning
	StageReview
	StageRelearning
)

// String returns the lower-case stage name.
func (s LearningStage) String() string {
	switch s {
	case StageNew:
		return "new"
	case StageLearning:
		return "learning"
	case StageReview:
		return "review"
	case StageRelearning:
		return "relearning"
	default:
		return "unknown"
	}
}

// Valid reports whether s is a known stage.
func (s LearningStage) Valid() bool {
	return s >= StageNew && s <= StageRelearning
}

// InLearning reports whether s is a short-interval drilling stage.
func (s LearningStage) InLearning() bool {
	return s == StageLearning || s == StageRelearning
}
