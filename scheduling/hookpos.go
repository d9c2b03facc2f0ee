package scheduling

import "github.com/sarchlab/rrsched/hooking"

// Hook positions raised by schedulers. Item is a process.Process copy and
// Detail is the tick (clock value before the increment) unless noted.
var (
	// HookPosProcessAdmitted marks New to Ready.
	HookPosProcessAdmitted = &hooking.HookPos{Name: "ProcessAdmitted"}

	// HookPosProcessDispatched marks Ready to Running.
	HookPosProcessDispatched = &hooking.HookPos{Name: "ProcessDispatched"}

	// HookPosProcessPreempted marks Running to Ready at a quantum boundary.
	HookPosProcessPreempted = &hooking.HookPos{Name: "ProcessPreempted"}

	// HookPosProcessFinished marks Running to Finished.
	HookPosProcessFinished = &hooking.HookPos{Name: "ProcessFinished"}

	// HookPosTickEnd fires after the clock advanced. Item is nil and Detail
	// is the new clock value.
	HookPosTickEnd = &hooking.HookPos{Name: "TickEnd"}
)
