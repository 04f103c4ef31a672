package bridge

// State is the position of a Session in the invocation protocol.
type State int

const (
	Created State = iota
	InputsSet
	Defaulted
	Computed
	Published
	Closed
)

var stateNames = [...]string{
	Created:   "CREATED",
	InputsSet: "INPUTS_SET",
	Defaulted: "DEFAULTED",
	Computed:  "COMPUTED",
	Published: "PUBLISHED",
	Closed:    "CLOSED",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}
