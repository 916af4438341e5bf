package gcode

// VM tracks the modal state of a program as blocks are run through it.
type VM struct {
	modal [256]float64
}

// NewVM constructs a new VM with default state.
func NewVM() *VM {
	vm := &VM{}

	// using grbl defaults
	vm.setModal(ModalGroupMotion, 0)
	vm.setModal(ModalGroupCoordinateSystem, 54)
	vm.setModal(ModalGroupPlaneSelection, 17)
	vm.setModal(ModalGroupDistanceMode, 90)
	vm.setModal(ModalGroupArcDistanceMode, 91.1)
	vm.setModal(ModalGroupFeedRateMode, 94)
	vm.setModal(ModalGroupUnits, 21)
	vm.setModal(ModalGroupCutterCompensationMode, 40)
	vm.setModal(ModalGroupToolLength, 49)
	vm.setModal(ModalGroupSpindle, 5)
	vm.setModal(ModalGroupCoolant, 9)

	return vm
}

func (vm *VM) setModal(m ModalGroup, v float64) {
	vm.modal[m] = v
}

func (vm VM) Inches() bool         { return vm.modal[ModalGroupUnits] == 20 }
func (vm VM) RelativeMotion() bool { return vm.modal[ModalGroupDistanceMode] == 91 }

// Motion returns the active motion mode, e.g. 0 for G0.
func (vm VM) Motion() float64 { return vm.modal[ModalGroupMotion] }

// Run validates b and applies its modal words.
func (vm *VM) Run(b Block) error {
	err := b.Validate()
	if err != nil {
		return err
	}
	for _, g := range b {
		mg := g.ModalGroup()
		if mg != ModalGroupNone && mg != ModalGroupNonModal {
			vm.setModal(mg, g.Arg)
		}
	}
	return nil
}
