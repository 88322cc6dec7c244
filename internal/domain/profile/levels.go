package profile

// LevelThresholds holds the minimum points for each level, level 1 first.
var LevelThresholds = []int{0, 20, 45, 75, 110, 150, 200, 260, 325, 400}

// LevelProgress describes where a point total sits on the level ladder.
type LevelProgress struct {
	CurrentLevel          int  `json:"current_level"`
	NextLevel             *int `json:"next_level"`
	CurrentLevelMinPoints int  `json:"current_level_min_points"`
	NextLevelMinPoints    *int `json:"next_level_min_points"`
	ProgressPercentage    int  `json:"progress_percentage"`
	PointsToNextLevel     int  `json:"points_to_next_level"`
}

// ProgressFor computes the level progress for a point total against the
// default thresholds.
func ProgressFor(points int) LevelProgress {
	return ProgressForThresholds(points, LevelThresholds)
}

// ProgressForThresholds computes the level progress against an explicit
// threshold ladder. Negative point totals count as zero.
func ProgressForThresholds(points int, thresholds []int) LevelProgress {
	if len(thresholds) == 0 {
		return LevelProgress{CurrentLevel: 1, ProgressPercentage: 100}
	}

	if points < 0 {
		points = 0
	}

	nextIndex := -1
	for i, min := range thresholds {
		if points < min {
			nextIndex = i
			break
		}
	}

	currentIndex := len(thresholds) - 1
	if nextIndex > 0 {
		currentIndex = nextIndex - 1
	} else if nextIndex == 0 {
		currentIndex = 0
	}

	currentMin := thresholds[currentIndex]

	// Top level reached: the ladder is complete.
	if nextIndex == -1 {
		return LevelProgress{
			CurrentLevel:          currentIndex + 1,
			CurrentLevelMinPoints: currentMin,
			ProgressPercentage:    100,
		}
	}

	nextMin := thresholds[nextIndex]
	nextLevel := currentIndex + 2

	progress := 0
	if levelRange := nextMin - currentMin; levelRange > 0 {
		progress = (points - currentMin) * 100 / levelRange
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	remaining := nextMin - points
	if remaining < 0 {
		remaining = 0
	}

	return LevelProgress{
		CurrentLevel:          currentIndex + 1,
		NextLevel:             &nextLevel,
		CurrentLevelMinPoints: currentMin,
		NextLevelMinPoints:    &nextMin,
		ProgressPercentage:    progress,
		PointsToNextLevel:     remaining,
	}
}
