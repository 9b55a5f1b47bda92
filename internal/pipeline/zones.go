package pipeline

// SpeedZone is a movement category derived from instantaneous speed.
type SpeedZone int

const (
	ZoneStanding SpeedZone = iota
	ZoneWalking
	ZoneJogging
	ZoneRunning
	ZoneHSR
	ZoneSprint
)

func (z SpeedZone) String() string {
	switch z {
	case ZoneStanding:
		return "standing"
	case ZoneWalking:
		return "walking"
	case ZoneJogging:
		return "jogging"
	case ZoneRunning:
		return "running"
	case ZoneHSR:
		return "hsr"
	case ZoneSprint:
		return "sprint"
	default:
		return "?"
	}
}

// Zone boundaries in km/h, upper-exclusive.
var zoneUpperKmh = [...]float64{1, 11, 14, 20, 25}

// ClassifySpeed maps a speed in km/h to its movement category.
func ClassifySpeed(kmh float64) SpeedZone {
	for z, upper := range zoneUpperKmh {
		if kmh < upper {
			return SpeedZone(z)
		}
	}
	return ZoneSprint
}
