package tours

// DateStatus is the lifecycle status of one scheduled departure.
type DateStatus string

const (
	DateStatusAvailable DateStatus = "available"
	DateStatusFull      DateStatus = "full"
	DateStatusCancelled DateStatus = "cancelled"
)

func (s DateStatus) IsValid() bool {
	switch s {
	case DateStatusAvailable, DateStatusFull, DateStatusCancelled:
		return true
	default:
		return false
	}
}

// Difficulty grades how demanding a tour is for participants.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}
