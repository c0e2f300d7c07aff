package learning

// DefaultLevelThresholds 固定的升级门槛表。等级为表中不超过当前 XP 的
// 最大门槛的 1-based 下标；超出表尾后按上一门槛翻倍开放式延伸。
var DefaultLevelThresholds = []int{0, 100, 250, 500, 1000, 2000, 4000, 8000, 15000, 30000}

// LevelInfo describes where an XP total sits on the level curve.
type LevelInfo struct {
	Level                int `json:"level"`
	CurrentLevelFloorXP  int `json:"currentLevelFloorXp"`
	NextLevelXP          int `json:"nextLevelXp"`
	CurrentXPWithinLevel int `json:"currentXpWithinLevel"`
	NeededXPForNextLevel int `json:"neededXpForNextLevel"`
}

// LevelOf 将累计 XP 映射为等级信息。xp 恰好等于门槛时进入新等级。
func LevelOf(xp int) LevelInfo {
	return LevelOfWithThresholds(xp, DefaultLevelThresholds)
}

// LevelOfWithThresholds is LevelOf against a caller-supplied ascending table.
func LevelOfWithThresholds(xp int, thresholds []int) LevelInfo {
	if xp < 0 {
		xp = 0
	}
	if len(thresholds) == 0 {
		thresholds = DefaultLevelThresholds
	}
	// 表必须从 0 起，否则低于首门槛的 XP 会算出负的等级内进度
	if thresholds[0] > 0 {
		thresholds = append([]int{0}, thresholds...)
	}

	level := 1
	floor := thresholds[0]
	next := floor * 2
	if len(thresholds) > 1 {
		next = thresholds[1]
	}

	for i := 1; i < len(thresholds); i++ {
		if xp < thresholds[i] {
			return levelInfo(xp, level, floor, next)
		}
		level = i + 1
		floor = thresholds[i]
		if i+1 < len(thresholds) {
			next = thresholds[i+1]
		} else {
			next = floor * 2
		}
	}

	// Beyond the table: synthesize thresholds by doubling so progression
	// never fails for very large totals.
	for xp >= next {
		level++
		floor = next
		next = floor * 2
	}
	return levelInfo(xp, level, floor, next)
}

func levelInfo(xp, level, floor, next int) LevelInfo {
	return LevelInfo{
		Level:                level,
		CurrentLevelFloorXP:  floor,
		NextLevelXP:          next,
		CurrentXPWithinLevel: xp - floor,
		NeededXPForNextLevel: next - floor,
	}
}
