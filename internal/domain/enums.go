package domain

// StartPolicy decides what starting a timer does while one is already running.
type StartPolicy string

const (
	// StartReject refuses a start while an interval is open.
	StartReject StartPolicy = "reject"
	// StartAllow appends another open interval, as older stored data expects.
	StartAllow StartPolicy = "allow"
)

// ValidStartPolicies is the canonical set of accepted policy strings.
var ValidStartPolicies = map[string]bool{
	string(StartReject): true,
	string(StartAllow):  true,
}

// IntervalAction names a timer mutation on a task entry.
type IntervalAction string

const (
	ActionStart     IntervalAction = "start"
	ActionEnd       IntervalAction = "end"
	ActionDelete    IntervalAction = "delete"
	ActionAddManual IntervalAction = "add_manual"
)

// ValidIntervalActions is the canonical set of accepted action strings.
var ValidIntervalActions = map[string]bool{
	string(ActionStart):     true,
	string(ActionEnd):       true,
	string(ActionDelete):    true,
	string(ActionAddManual): true,
}
