package loop

// State identifies which prompt the loop is waiting on.
type State int

const (
	StateMenu State = iota
	StateCreateName
	StateCreatePriority
	StateChangeName
	StateChangePriority
	StateCompleteName
	StateRemoveName
	StateFinished
)

var stateNames = map[State]string{
	StateMenu:           "menu",
	StateCreateName:     "create-name",
	StateCreatePriority: "create-priority",
	StateChangeName:     "change-name",
	StateChangePriority: "change-priority",
	StateCompleteName:   "complete-name",
	StateRemoveName:     "remove-name",
	StateFinished:       "finished",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
