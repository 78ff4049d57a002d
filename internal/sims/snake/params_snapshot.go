package snake

import (
	"strconv"

	"mad-snake/internal/core"
)

// Parameters reports the grid, timing and progress values for HUDs.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", s.w),
				intParam("h", "Height", s.h),
			},
		},
		{
			Name: "Timing",
			Params: []core.Parameter{
				intParam("tick_ms", "Tick (ms)", int(s.TickDuration().Milliseconds())),
			},
		},
		{
			Name: "Game",
			Params: []core.Parameter{
				stringParam("status", "Status", s.status.String()),
				intParam("score", "Score", s.score),
				intParam("length", "Length", s.Len()),
				uintParam("ticks", "Ticks", s.ticks),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func uintParam(key, label string, value uint64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatUint(value, 10),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
