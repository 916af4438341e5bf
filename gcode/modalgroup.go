package gcode

type ModalGroup byte

const (
	ModalGroupNone ModalGroup = iota
	ModalGroupNonModal
	ModalGroupMotion
	ModalGroupPlaneSelection
	ModalGroupDistanceMode
	ModalGroupArcDistanceMode
	ModalGroupFeedRateMode
	ModalGroupUnits
	ModalGroupCutterCompensationMode
	ModalGroupToolLength
	ModalGroupCannedCycleReturn
	ModalGroupCoordinateSystem
	ModalGroupControlMode
	ModalGroupSpindleMode
	ModalGroupStopping
	ModalGroupToolChange
	ModalGroupSpindle
	ModalGroupCoolant
	ModalGroupOverride
	ModalGroupFeedRate
)

var gGroups = map[float64]ModalGroup{
	4: ModalGroupNonModal, 10: ModalGroupNonModal, 28: ModalGroupNonModal, 30: ModalGroupNonModal,
	53: ModalGroupNonModal, 92: ModalGroupNonModal, 92.1: ModalGroupNonModal, 92.2: ModalGroupNonModal,
	92.3: ModalGroupNonModal,

	0: ModalGroupMotion, 1: ModalGroupMotion, 2: ModalGroupMotion, 3: ModalGroupMotion,
	33: ModalGroupMotion, 38.2: ModalGroupMotion, 38.3: ModalGroupMotion, 38.4: ModalGroupMotion,
	38.5: ModalGroupMotion, 73: ModalGroupMotion, 76: ModalGroupMotion, 80: ModalGroupMotion,
	81: ModalGroupMotion, 82: ModalGroupMotion, 83: ModalGroupMotion, 84: ModalGroupMotion,
	85: ModalGroupMotion, 86: ModalGroupMotion, 87: ModalGroupMotion, 88: ModalGroupMotion,
	89: ModalGroupMotion,

	17: ModalGroupPlaneSelection, 18: ModalGroupPlaneSelection, 19: ModalGroupPlaneSelection,
	90: ModalGroupDistanceMode, 91: ModalGroupDistanceMode,
	90.1: ModalGroupArcDistanceMode, 91.1: ModalGroupArcDistanceMode,
	93: ModalGroupFeedRateMode, 94: ModalGroupFeedRateMode, 95: ModalGroupFeedRateMode,
	20: ModalGroupUnits, 21: ModalGroupUnits,
	40: ModalGroupCutterCompensationMode, 41: ModalGroupCutterCompensationMode, 42: ModalGroupCutterCompensationMode,
	43: ModalGroupToolLength, 43.1: ModalGroupToolLength, 49: ModalGroupToolLength,
	98: ModalGroupCannedCycleReturn, 99: ModalGroupCannedCycleReturn,
	54: ModalGroupCoordinateSystem, 55: ModalGroupCoordinateSystem, 56: ModalGroupCoordinateSystem,
	57: ModalGroupCoordinateSystem, 58: ModalGroupCoordinateSystem, 59: ModalGroupCoordinateSystem,
	61: ModalGroupControlMode, 61.1: ModalGroupControlMode, 64: ModalGroupControlMode,
	96: ModalGroupSpindleMode, 97: ModalGroupSpindleMode,
}

var mGroups = map[float64]ModalGroup{
	0: ModalGroupStopping, 1: ModalGroupStopping, 2: ModalGroupStopping, 30: ModalGroupStopping, 60: ModalGroupStopping,
	6: ModalGroupToolChange,
	3: ModalGroupSpindle, 4: ModalGroupSpindle, 5: ModalGroupSpindle,
	7: ModalGroupCoolant, 8: ModalGroupCoolant, 9: ModalGroupCoolant,
	48: ModalGroupOverride, 49: ModalGroupOverride,
}

func (w Word) ModalGroup() ModalGroup {
	switch w.W {
	case 'G':
		return gGroups[w.Arg]
	case 'M':
		return mGroups[w.Arg]
	case 'F':
		return ModalGroupFeedRate
	}
	return ModalGroupNone
}
